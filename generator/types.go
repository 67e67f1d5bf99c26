package generator

import "time"

// ContentType 选择提示词模板与必填字段。
type ContentType string

const (
	TypeBio        ContentType = "bio"
	TypeProject    ContentType = "project"
	TypeReflection ContentType = "reflection"
)

// ContentTypes lists the supported types in display order.
var ContentTypes = []ContentType{TypeBio, TypeProject, TypeReflection}

// requiredFields 每种类型恰好两个必填字段，与前端表单校验一致。
var requiredFields = map[ContentType][]string{
	TypeBio:        {"name", "skills"},
	TypeProject:    {"title", "description"},
	TypeReflection: {"topic", "experience"},
}

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	_, ok := requiredFields[t]
	return ok
}

// RequiredFields returns the two fields a request of this type must fill.
func (t ContentType) RequiredFields() []string {
	return append([]string(nil), requiredFields[t]...)
}

// Request 是一次生成请求：类型 + 表单字段。
type Request struct {
	Type ContentType       `json:"type" yaml:"type"`
	Data map[string]string `json:"data" yaml:"data"`
}

// Provider names reported in aiProvider.
const (
	ProviderGemini = "Google Gemini"
	ProviderOpenAI = "OpenAI"
	ProviderMock   = "Mock Data"
)

// Result 记录一次完成的生成，创建后不再修改。
type Result struct {
	ID        string            `json:"id" yaml:"id"`
	Type      ContentType       `json:"type" yaml:"type"`
	Data      map[string]string `json:"data" yaml:"data"`
	Content   string            `json:"content" yaml:"content"`
	HTML      string            `json:"html,omitempty" yaml:"-"`
	Digest    string            `json:"digest,omitempty" yaml:"digest,omitempty"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`
	Provider  string            `json:"aiProvider" yaml:"aiProvider"`
}

// FallbackProvider is the aiProvider tag used after a failed call to provider.
func FallbackProvider(provider string) string {
	return ProviderMock + " (" + provider + " Failed)"
}
