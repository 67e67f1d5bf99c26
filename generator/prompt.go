package generator

import (
	"fmt"
	"strings"
)

const notSpecified = "Not specified"

// BuildPrompt 根据内容类型生成发送给模型的提示词。缺失字段用 "Not specified" 占位，未知类型返回通用提示，永不失败。
func BuildPrompt(t ContentType, data map[string]string) string {
	field := func(key, def string) string {
		if v := strings.TrimSpace(data[key]); v != "" {
			return v
		}
		return def
	}

	var sb strings.Builder
	switch t {
	case TypeBio:
		sb.WriteString(fmt.Sprintf("Create a professional biography for %s.\n\n", field("name", "a professional individual")))
		sb.WriteString(fmt.Sprintf("Professional Skills: %s\n", field("skills", notSpecified)))
		sb.WriteString(fmt.Sprintf("Key Achievements: %s\n", field("achievements", notSpecified)))
		sb.WriteString(fmt.Sprintf("Tone: %s\n\n", field("tone", "professional")))
		sb.WriteString("Write a compelling 150-200 word professional bio that highlights expertise and accomplishments. ")
		sb.WriteString("Make it engaging and suitable for LinkedIn or professional websites.")
	case TypeProject:
		sb.WriteString("Create a professional project summary:\n\n")
		sb.WriteString(fmt.Sprintf("Project Title: %s\n", field("title", "Professional Project")))
		sb.WriteString(fmt.Sprintf("Description: %s\n", field("description", notSpecified)))
		sb.WriteString(fmt.Sprintf("Technologies: %s\n", field("technologies", notSpecified)))
		sb.WriteString(fmt.Sprintf("Outcomes: %s\n\n", field("outcomes", notSpecified)))
		sb.WriteString("Write a clear, concise 200-250 word project summary that explains the project's purpose, technical approach, and impact. ")
		sb.WriteString("Structure it professionally.")
	case TypeReflection:
		sb.WriteString("Write a thoughtful learning reflection:\n\n")
		sb.WriteString(fmt.Sprintf("Topic: %s\n", field("topic", notSpecified)))
		sb.WriteString(fmt.Sprintf("Experience: %s\n", field("experience", notSpecified)))
		sb.WriteString(fmt.Sprintf("Learnings: %s\n", field("learnings", notSpecified)))
		sb.WriteString(fmt.Sprintf("Applications: %s\n\n", field("future", notSpecified)))
		sb.WriteString("Create a 250-300 word reflection that demonstrates deep thinking about the learning experience, personal growth, and future application. ")
		sb.WriteString("Use a reflective yet professional tone.")
	default:
		return "Please provide content details."
	}
	return sb.String()
}
