package authsvc

import "testing"

func TestValidateUserID(t *testing.T) {
	cases := []struct {
		userID string
		ok     bool
	}{
		{"alice1", true},
		{"ABCED12", true},
		{"alice", false},
		{"12345", false},
		{"", false},
	}
	for _, tc := range cases {
		err := ValidateUserID(tc.userID)
		if tc.ok && err != nil {
			t.Errorf("ValidateUserID(%q) = %v; want nil", tc.userID, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidateUserID(%q) = nil; want error", tc.userID)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		mode     Mode
		ok       bool
	}{
		{"secret123", ModeRegister, true},
		{"abc1", ModeRegister, false},     // too short
		{"abcdefgh", ModeRegister, false}, // no digit
		{"12345678", ModeRegister, false}, // no letter
		{"abc1", ModeLogin, true},         // login has no length rule
		{"abcd", ModeLogin, false},
	}
	for _, tc := range cases {
		err := ValidatePassword(tc.password, tc.mode)
		if tc.ok && err != nil {
			t.Errorf("ValidatePassword(%q, %v) = %v; want nil", tc.password, tc.mode, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ValidatePassword(%q, %v) = nil; want error", tc.password, tc.mode)
		}
	}
}
