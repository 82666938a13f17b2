package classify

// DefaultGroups returns the built-in extension lists.
func DefaultGroups() Groups {
	return Groups{
		Audio: []string{".m4a", ".flac", ".mp3", ".wav", ".wma", ".aac"},
		Video: []string{
			".webm", ".mpg", ".mp2", ".mpeg", ".mpe", ".mpv", ".ogg",
			".mp4", ".mp4v", ".m4v", ".avi", ".wmv", ".mov", ".qt", ".flv", ".swf", ".avchd",
		},
		Image: []string{
			".jpg", ".jpeg", ".jpe", ".jif", ".jfif", ".jfi", ".png", ".gif", ".webp", ".tiff", ".tif",
			".psd", ".raw", ".arw", ".cr2", ".nrw", ".k25", ".bmp", ".dib", ".heif", ".heic", ".ind",
			".indd", ".indt", ".jp2", ".j2k", ".jpf", ".jpx", ".jpm", ".mj2", ".svg", ".svgz", ".ai",
			".eps", ".ico",
		},
		Document:    []string{".doc", ".docx", ".odt", ".pdf", ".xls", ".xlsx", ".ppt", ".pptx"},
		Application: []string{".exe", ".msi", ".bat", ".cmd", ".com", ".jar", ".app", ".run"},
		Archive:     []string{".zip"},
	}
}
