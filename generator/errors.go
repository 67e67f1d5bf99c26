package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation 请求缺少类型、字段或必填项。
	ErrValidation = errors.New("invalid generation request")
	// ErrProvider 外部模型调用失败（HTTP 状态、网络或 JSON 解析）。
	ErrProvider = errors.New("ai provider error")
)

// ValidationError carries the client-facing message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProviderError wraps any failure of a single provider call.
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(" API error")
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProvider}
	}
	return []error{ErrProvider, e.Err}
}

// Validate 检查请求是否满足类型与必填字段要求。
func Validate(req Request) error {
	if req.Type == "" || len(req.Data) == 0 {
		return &ValidationError{Message: "Type and data are required"}
	}
	if !req.Type.Valid() {
		return &ValidationError{Message: fmt.Sprintf("Unsupported content type: %s", req.Type)}
	}
	var missing []string
	for _, f := range requiredFields[req.Type] {
		if strings.TrimSpace(req.Data[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: "Missing required fields: " + strings.Join(missing, ", ")}
	}
	return nil
}
