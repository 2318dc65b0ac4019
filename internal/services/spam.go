package services

import "strings"

// SpamDetector does a cheap keyword scan over free-text form input
// before it reaches the inbox.
type SpamDetector struct {
	spamWords []string
}

// NewSpamDetector creates a detector with the default word list.
func NewSpamDetector() *SpamDetector {
	return &SpamDetector{
		spamWords: []string{
			"bitcoin", "btc", "crypto", "wallet", "deposit", "withdraw",
			"investment", "profit", "earn money", "make money", "get rich",
			"quick money", "free money", "lottery", "prize", "winner",
			"claim", "account suspended", "security alert", "bank transfer",
			"western union", "moneygram", "inheritance", "casino", "viagra",
		},
	}
}

// IsSpam reports whether the message trips the keyword list.
func (sd *SpamDetector) IsSpam(message string) bool {
	messageLower := strings.ToLower(message)
	for _, word := range sd.spamWords {
		if strings.Contains(messageLower, word) {
			return true
		}
	}
	return false
}
