package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "John Doe",
			wantErr: false,
		},
		{
			name:    "single name",
			input:   "John",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "name too short",
			input:   "J",
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGameDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{
			name:    "valid date",
			date:    "2024-01-05",
			wantErr: false,
		},
		{
			name:    "leap day",
			date:    "2024-02-29",
			wantErr: false,
		},
		{
			name:    "empty date",
			date:    "",
			wantErr: true,
		},
		{
			name:    "wrong layout",
			date:    "01/05/2024",
			wantErr: true,
		},
		{
			name:    "impossible day",
			date:    "2023-02-29",
			wantErr: true,
		},
		{
			name:    "missing zero padding",
			date:    "2024-1-5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGameDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGameDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		maxScore      int
		wordsFound    []string
		pangramsFound []string
		wantErr       bool
	}{
		{
			name:       "valid submission",
			score:      120,
			maxScore:   500,
			wordsFound: []string{"cabal", "allay"},
			wantErr:    false,
		},
		{
			name:          "pangram included in words",
			score:         120,
			maxScore:      500,
			wordsFound:    []string{"cabal", "blackball"},
			pangramsFound: []string{"blackball"},
			wantErr:       false,
		},
		{
			name:          "pangram case differs from word",
			score:         120,
			maxScore:      500,
			wordsFound:    []string{"Blackball"},
			pangramsFound: []string{"blackball"},
			wantErr:       false,
		},
		{
			name:     "zero score is valid",
			score:    0,
			maxScore: 500,
			wantErr:  false,
		},
		{
			name:     "negative score",
			score:    -1,
			maxScore: 500,
			wantErr:  true,
		},
		{
			name:     "zero max score",
			score:    10,
			maxScore: 0,
			wantErr:  true,
		},
		{
			name:          "pangram not among found words",
			score:         120,
			maxScore:      500,
			wordsFound:    []string{"cabal"},
			pangramsFound: []string{"blackball"},
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.score, tt.maxScore, tt.wordsFound, tt.pangramsFound)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
