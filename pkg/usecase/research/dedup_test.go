package research_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/model"
	"github.com/minekvitteringer/skribent/pkg/usecase/research"
)

const threshold = 0.6

func TestSimilar(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected bool
	}{
		{
			name:     "exact match after normalization",
			a:        "  Mistet Kvittering  ",
			b:        "mistet kvittering",
			expected: true,
		},
		{
			name:     "substring containment",
			a:        "elkjøp kvittering",
			b:        "slik finner du elkjøp kvittering på nett",
			expected: true,
		},
		{
			name:     "same topic different phrasing",
			a:        "Slik finner du kvittering fra Elkjøp",
			b:        "Elkjøp kvittering - slik finner du den",
			expected: true,
		},
		{
			name:     "same template with another store still overlaps",
			a:        "Slik finner du kvittering fra Elkjøp",
			b:        "Slik finner du kvittering fra Power",
			expected: true,
		},
		{
			name:     "one shared stem over three variants stays below threshold",
			a:        "garanti robot",
			b:        "garantitid garantibevis garantisak",
			expected: false,
		},
		{
			name:     "compound word matches both halves either way",
			a:        "kvitteringsgaranti retur",
			b:        "kvittering garanti",
			expected: true,
		},
		{
			name:     "unrelated titles",
			a:        "MVA-dokumentasjon for enkeltpersonforetak",
			b:        "Vipps-innlogging uten passord",
			expected: false,
		},
		{
			name:     "empty strings never match",
			a:        "",
			b:        "kvittering",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, research.Similar(tt.a, tt.b, threshold)).Equal(tt.expected)
			// Symmetry must hold for every pair.
			gt.V(t, research.Similar(tt.b, tt.a, threshold)).Equal(tt.expected)
		})
	}
}

func TestFilterUniqueReasons(t *testing.T) {
	universe := []model.GeneratedTopic{
		{Title: "Mistet kvittering - hva gjør du nå?", Query: "garanti mobil", Topic: "Black Friday kvitteringer"},
	}
	candidates := []model.Idea{
		{Title: "Mistet kvittering? Dette gjør du", PrimaryKeyword: "mistet kvittering"},
		{Title: "Garanti på mobil i Norge", PrimaryKeyword: "garanti mobil"},
		{Title: "Slik holder du orden på Black Friday kvitteringer"},
		{Title: "Kvitteringer for enkeltpersonforetak", PrimaryKeyword: "enk kvittering"},
	}

	accepted, rejected := research.FilterUnique(candidates, universe, threshold)
	gt.A(t, accepted).Length(1)
	gt.V(t, accepted[0].Title).Equal("Kvitteringer for enkeltpersonforetak")

	gt.A(t, rejected).Length(3)
	gt.V(t, rejected[0].Reason).Equal(model.RejectSimilarTitle)
	gt.V(t, rejected[1].Reason).Equal(model.RejectSimilarKeyword)
	gt.V(t, rejected[1].MatchedAgainst).Equal("garanti mobil")
	gt.V(t, rejected[2].Reason).Equal(model.RejectSimilarTopic)
}

func TestFilterUniqueIdempotence(t *testing.T) {
	universe := []model.GeneratedTopic{
		{Title: "Reklamasjon uten kvittering - dine rettigheter"},
	}
	candidates := []model.Idea{
		{Title: "Reklamasjon uten kvittering: slik går du frem"},
		{Title: "Vipps-innlogging forklart"},
	}

	first, firstRejected := research.FilterUnique(candidates, universe, threshold)
	second, secondRejected := research.FilterUnique(candidates, universe, threshold)

	gt.Equal(t, first, second)
	gt.Equal(t, firstRejected, secondRejected)
}

func TestFilterUniqueEmptyUniverse(t *testing.T) {
	candidates := []model.Idea{
		{Title: "Første artikkel"},
		{Title: "Andre artikkel"},
	}

	accepted, rejected := research.FilterUnique(candidates, nil, threshold)
	gt.A(t, accepted).Length(2)
	gt.A(t, rejected).Length(0)
}
