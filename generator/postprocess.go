package generator

import (
	"errors"
	"strings"
)

var errEmptyContent = errors.New("model returned empty content")

// PostProcess 规整模型输出：统一换行、去掉首尾空白和包裹全文的代码块。空内容视为调用失败。
func PostProcess(raw string) (string, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.TrimSpace(text)
	text = stripFence(text)
	if text == "" {
		return "", errEmptyContent
	}
	return text, nil
}

// stripFence removes a ``` fence wrapping the whole response.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(text, "```")
	nl := strings.IndexByte(inner, '\n')
	if nl < 0 {
		return text
	}
	return strings.TrimSpace(inner[nl+1:])
}
