package model

type ImageField struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type TextField struct {
	Value string `json:"value"`
}

// RichTextField holds CMS-authored HTML, rendered without escaping.
type RichTextField struct {
	Value string `json:"value"`
}

type CardFields struct {
	Title       TextField     `json:"title"`
	Description RichTextField `json:"description"`
	Image       ImageField    `json:"image"`
}
