package utils

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "带括号注释和行标签的名单",
			input:    "John Smith (captain), Front Row: Jane Doe, Sigma, A, Bob",
			expected: []string{"John Smith", "Jane Doe", "Bob"},
		},
		{
			name:     "空字符串",
			input:    "",
			expected: []string{},
		},
		{
			name:     "仅含版面噪声",
			input:    "Sigma, Row, 123, !!",
			expected: []string{},
		},
		{
			name:     "带转义换行符",
			input:    `John Smith,\nJane Doe`,
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "带真实换行和制表符",
			input:    "John Smith,\n\tJane Doe",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "带ocr_前缀残留",
			input:    "ocr_John Smith, Jane Doe",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "带组织符号",
			input:    "ΣJohn Smith, Jane Doe",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "大小写不敏感去重保留首次写法",
			input:    "John Smith, JOHN SMITH, john smith",
			expected: []string{"John Smith"},
		},
		{
			name:     "行标签大小写变体",
			input:    "FRONT ROW: John Smith, middle row: Jane Doe, Second Row: Bob Lee",
			expected: []string{"John Smith", "Jane Doe", "Bob Lee"},
		},
		{
			name:     "尾部非名字字符",
			input:    "John Smith123, Jane Doe!!",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "带连字符和撇号的名字",
			input:    "Mary-Jane O'Brien, Jean-Luc Picard",
			expected: []string{"Mary-Jane O'Brien", "Jean-Luc Picard"},
		},
		{
			name:     "两字符无空格单词视为噪声",
			input:    "Ab, Bob",
			expected: []string{"Bob"},
		},
		{
			name:     "结构词停用表过滤",
			input:    "Back, Group, Side, Third, John Smith",
			expected: []string{"John Smith"},
		},
		{
			name:     "仅数字片段",
			input:    "2024, John Smith",
			expected: []string{"John Smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractTags(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("ExtractTags(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("ExtractTags(%q)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestExtractTags_CapsOutput(t *testing.T) {
	parts := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		first := rune('A' + i/26)
		second := rune('a' + i%26)
		parts = append(parts, fmt.Sprintf("Player %c%c", first, second))
	}
	input := strings.Join(parts, ", ")

	result := ExtractTags(input)
	if len(result) != maxTags {
		t.Errorf("ExtractTags() returned %d tags, want %d", len(result), maxTags)
	}
}

func TestExtractTags_Deterministic(t *testing.T) {
	input := `Front Row: John Smith (captain), Jane\nDoe, Sigma, ocr_Bob Lee`

	first := ExtractTags(input)
	second := ExtractTags(input)

	if len(first) != len(second) {
		t.Fatalf("ExtractTags() length differs between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("ExtractTags() result differs at index %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func Test_cleanTagSegment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "移除括号注释",
			input:    "John Smith (captain)",
			expected: "John Smith",
		},
		{
			name:     "移除行标签前缀",
			input:    "Front Row: Jane Doe",
			expected: "Jane Doe",
		},
		{
			name:     "剥离尾部数字",
			input:    "John Smith123",
			expected: "John Smith",
		},
		{
			name:     "保留连字符句点撇号",
			input:    "J.R. O'Neill-Smith",
			expected: "J.R. O'Neill-Smith",
		},
		{
			name:     "纯符号片段清空",
			input:    "!!??",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanTagSegment(tt.input)
			if result != tt.expected {
				t.Errorf("cleanTagSegment(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func Test_isValidTag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "正常人名", input: "John Smith", expected: true},
		{name: "三字符单词", input: "Bob", expected: true},
		{name: "空字符串", input: "", expected: false},
		{name: "单字符", input: "A", expected: false},
		{name: "两字符无空格", input: "Ab", expected: false},
		{name: "停用词sigma", input: "Sigma", expected: false},
		{name: "停用词大写", input: "GROUP", expected: false},
		{name: "无字母", input: "12 34", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isValidTag(tt.input)
			if result != tt.expected {
				t.Errorf("isValidTag(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
