package response

type UploadImage struct {
	ImageURL string `json:"imageUrl"`
}

type Error struct {
	Error string `json:"error"`
}
