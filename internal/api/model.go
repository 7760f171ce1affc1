package api

import (
	"pwd-strength/internal/util"
	"pwd-strength/pkg/hibp"
)

type checkRequest struct {
	// Empty is valid and scores 0. Capped so the zxcvbn pass stays cheap.
	Password *string `json:"password" binding:"required,max=256"`
	// Pwned also looks the password up in the breach corpus.
	Pwned bool `json:"pwned"`
}

type generateRequest struct {
	Length int   `json:"length" binding:"omitempty,min=0,max=256"`
	Upper  *bool `json:"upper"`
	Lower  *bool `json:"lower"`
	Digit  *bool `json:"digit"`
	Symbol *bool `json:"symbol"`
}

type zxcvbnStrength struct {
	Score            int     `json:"score"`
	CrackTime        float64 `json:"crackTime"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
}

type strengthResponse struct {
	Score    int             `json:"score"`
	Label    string          `json:"label"`
	Criteria map[string]bool `json:"criteria"`
	// Nil when undefined or too large to be represented.
	CrackTimeSeconds *float64        `json:"crackTimeSeconds"`
	CrackTimeDisplay string          `json:"crackTimeDisplay"`
	Tips             []string        `json:"tips"`
	Zxcvbn           *zxcvbnStrength `json:"zxcvbn,omitempty"`
	Pwned            *bool           `json:"pwned,omitempty"`
	PwnedCount       *uint64         `json:"pwnedCount,omitempty"`
}

type generateResponse struct {
	Password string            `json:"password"`
	Length   int               `json:"length"`
	Strength *strengthResponse `json:"strength"`
}

type healthResponse struct {
	Status string      `json:"status"`
	Uptime string      `json:"uptime"`
	Memory util.Memory `json:"memory"`
	HIBP   *hibp.Stats `json:"hibp,omitempty"`
}
