package entity

// MeaningRecord is one word/meaning/image triple as written to the record store.
// Timestamp is epoch millis as a string, generated at record time.
type MeaningRecord struct {
	Word          string `json:"word" dynamodbav:"word"`
	Timestamp     string `json:"timestamp" dynamodbav:"timestamp"`
	Meaning       string `json:"meaning" dynamodbav:"meaning"`
	ImageLocation string `json:"imgloc" dynamodbav:"imgloc"`
}
