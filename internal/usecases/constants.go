package usecases

// Object key prefixes in the storage bucket
const (
	idDocumentPrefix    = "id-documents"
	propertyMediaPrefix = "properties"
)

// Default upload limit, used when the configured limit is not positive.
const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

var idDocumentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var photoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}
