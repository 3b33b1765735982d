// internal/app/system/limits/limits.go
package limits

// Request body size limits for admin forms.
// Image uploads are capped separately by the upload_max_mb setting.
const (
	// MaxTextFormSize caps plain admin form posts (story, lists, press releases).
	MaxTextFormSize = 1 << 20 // 1 MB

	// MaxMultipartMemory is how much of a multipart upload is kept in memory
	// before spilling to temp files.
	MaxMultipartMemory = 8 << 20 // 8 MB

	// MultipartOverhead is added to the file limit to leave room for the
	// other form fields and multipart boundaries.
	MultipartOverhead = 1 << 20 // 1 MB
)
