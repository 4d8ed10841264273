package dto

// Meaning is the body of a meaning-record request.
type Meaning struct {
	Word          string `json:"word"`
	Meaning       string `json:"meaning"`
	ImageLocation string `json:"imgloc"`
}
