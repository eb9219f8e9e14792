package model

type SummaryRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type SummarySection struct {
	Title string       `json:"title"`
	Rows  []SummaryRow `json:"rows"`
}

type SummaryFile struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
	SizeText string `json:"sizeText"`
}

type Summary struct {
	Title      string           `json:"title"`
	Sections   []SummarySection `json:"sections"`
	Files      []SummaryFile    `json:"files"`
	NoFiles    string           `json:"noFiles"`
	FilesTitle string           `json:"filesTitle"`

	// FileColumns holds the name, type and size headings of the file table.
	FileColumns [3]string `json:"fileColumns"`
}
