package biz

import "strings"

// ValidateUploadSize 校验解码后的字节数是否超过上限。纯函数，无 I/O
func ValidateUploadSize(decodedBytes, maxBytes int64) error {
	if decodedBytes > maxBytes {
		return &FileTooLargeError{Actual: decodedBytes, Max: maxBytes}
	}
	return nil
}

// DeriveMediaType 根据 Content-Type 前缀推导媒体类型
func DeriveMediaType(contentType string) MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return MediaTypeVideo
	default:
		return MediaTypeDocument
	}
}

// normalizeTags 去重并去掉空白标签，保持插入顺序
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// sanitizeFileName 清理文件名中不适合作为对象键的字符
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		" ", "_",
		"#", "_",
		"?", "_",
		"%", "_",
	)
	return replacer.Replace(name)
}
