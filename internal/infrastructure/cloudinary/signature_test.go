package cloudinary

import "testing"

func TestSignParams(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]string
		apiSecret string
		expected  string
	}{
		{
			name: "官方示例参数",
			params: map[string]string{
				"public_id": "sample_image",
				"timestamp": "1315060510",
			},
			apiSecret: "abcd",
			expected:  "b4ad47fb4e25c7bf5f92a20089f9db59bc302313",
		},
		{
			name: "多参数按键名排序",
			params: map[string]string{
				"timestamp": "1700000000",
				"ocr":       "adv_ocr",
				"folder":    "photos/2024",
			},
			apiSecret: "topsecret",
			expected:  "e46fca1a85758a0371869ad8b49fd873cd849ab9",
		},
		{
			name: "空值参数不参与签名",
			params: map[string]string{
				"timestamp": "1700000000",
				"folder":    "",
			},
			apiSecret: "topsecret",
			expected:  "8e1a09a828985352cd753768412e637cf52f1734",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SignParams(tt.params, tt.apiSecret)
			if result != tt.expected {
				t.Errorf("SignParams() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSignParams_Deterministic(t *testing.T) {
	params := map[string]string{
		"folder":    "archive",
		"tags":      "a,b",
		"timestamp": "1700000001",
	}

	first := SignParams(params, "secret")
	second := SignParams(params, "secret")
	if first != second {
		t.Errorf("SignParams() not deterministic: %q vs %q", first, second)
	}
}

func TestSignParams_SecretChangesSignature(t *testing.T) {
	params := map[string]string{"timestamp": "1700000001"}

	if SignParams(params, "secret-a") == SignParams(params, "secret-b") {
		t.Error("SignParams() should differ for different secrets")
	}
}
