package model

// Article is a drafted post ready for the CMS.
type Article struct {
	Title           string `json:"title"`
	HTML            string `json:"html"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Excerpt         string `json:"excerpt,omitempty"`
}

// Post is the CMS's record of a created post.
type Post struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}
