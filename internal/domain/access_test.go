package domain

import "testing"

func TestAccessRules_Allowed(t *testing.T) {
	rules := AccessRules{Roles: map[string][]string{
		"analyst": {"reports/", "public/"},
		"admin":   {"*"},
	}}

	tests := []struct {
		name string
		role string
		path string
		want bool
	}{
		{"префикс совпал", "analyst", "reports/2025/q1.pdf", true},
		{"второй префикс", "analyst", "public/readme.md", true},
		{"чужой префикс", "analyst", "hr/salaries.xlsx", false},
		{"wildcard", "admin", "hr/salaries.xlsx", true},
		{"неизвестная роль", "guest", "public/readme.md", false},
		{"пустая роль", "", "public/readme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Allowed(tt.role, tt.path); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.path, got, tt.want)
			}
		})
	}
}

// Без настроенных правил любой аутентифицированный пользователь
// читает любой документ.
func TestAccessRules_EmptyAllowsAll(t *testing.T) {
	var rules AccessRules
	if !rules.Allowed("anything", "any/path.pdf") {
		t.Error("пустые правила должны разрешать доступ")
	}
}
