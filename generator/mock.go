package generator

import (
	"strings"
	"time"
)

// TimestampLayout is the footer format of mock content.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// MockContent 在未配置模型或模型调用失败时生成模板化文本。除页脚时间外输出是确定的。
func MockContent(t ContentType, data map[string]string, now time.Time) string {
	field := func(key, def string) string {
		if v := strings.TrimSpace(data[key]); v != "" {
			return v
		}
		return def
	}
	footer := "Generated on: " + now.Format(TimestampLayout)

	var sb strings.Builder
	switch t {
	case TypeBio:
		sb.WriteString("PROFESSIONAL BIOGRAPHY\n\n")
		sb.WriteString(field("name", "Professional Individual"))
		sb.WriteString(" is an expert in ")
		sb.WriteString(field("skills", "their field"))
		sb.WriteString(" with notable achievements in ")
		sb.WriteString(field("achievements", "their career"))
		sb.WriteString(". This professional demonstrates exceptional capability and dedication to excellence.\n\n")
		sb.WriteString("Their combination of technical proficiency and strategic thinking makes them a valuable asset in any organization.\n\n")
	case TypeProject:
		sb.WriteString("PROJECT SUMMARY\n\n")
		sb.WriteString("Project: " + field("title", "Professional Project") + "\n\n")
		sb.WriteString("Description: " + field("description", "This project was designed to achieve specific business objectives through innovative solutions.") + "\n\n")
		if v := field("technologies", ""); v != "" {
			sb.WriteString("Technologies: " + v + "\n\n")
		}
		if v := field("outcomes", ""); v != "" {
			sb.WriteString("Results: " + v + "\n\n")
		} else {
			sb.WriteString("The project successfully met all objectives and delivered significant value.\n\n")
		}
	case TypeReflection:
		sb.WriteString("LEARNING REFLECTION\n\n")
		sb.WriteString("Topic: " + field("topic", "Learning Experience") + "\n\n")
		sb.WriteString("Experience: " + field("experience", "This learning experience provided valuable insights and skill development opportunities.") + "\n\n")
		if v := field("learnings", ""); v != "" {
			sb.WriteString("Key Learnings: " + v + "\n\n")
		}
		if v := field("future", ""); v != "" {
			sb.WriteString("Future Applications: " + v + "\n\n")
		} else {
			sb.WriteString("These insights will be valuable for future professional challenges.\n\n")
		}
	default:
		sb.WriteString("Content generated successfully based on provided information.\n\n")
	}
	sb.WriteString(footer)
	return sb.String()
}
