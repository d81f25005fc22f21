package models

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type UploadedFile struct {
	Name string
	Path string
}
