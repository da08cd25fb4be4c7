package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gazetted/internal/service"
)

func TestCleanText_StripsLeadingNoise(t *testing.T) {
	assert.Equal(t, "Decree 45 of the Ministry", service.CleanText("  \n\t-- 3. Decree 45 of the Ministry"))
}

func TestCleanText_LeavesCleanTextAlone(t *testing.T) {
	assert.Equal(t, "Decree 45", service.CleanText("Decree 45"))
}

func TestCleanText_BlankUnchanged(t *testing.T) {
	assert.Equal(t, "", service.CleanText(""))
	assert.Equal(t, "   ", service.CleanText("   "))
}

func TestCleanText_Idempotent(t *testing.T) {
	once := service.CleanText("123 - Notice of auction")
	assert.Equal(t, once, service.CleanText(once))
}

func TestIsWordInText_WholeWordOnly(t *testing.T) {
	assert.True(t, service.IsWordInText("ENA", "supplied by ENA under contract"))
	assert.False(t, service.IsWordInText("ENA", "supplied by ENAG under contract"))
}

func TestIsWordInText_CaseInsensitive(t *testing.T) {
	assert.True(t, service.IsWordInText("Ministry of Finance", "resolution of the MINISTRY OF FINANCE dated"))
}

func TestIsWordInText_BlankWord(t *testing.T) {
	assert.False(t, service.IsWordInText("", "some text"))
	assert.False(t, service.IsWordInText("   ", "some text"))
}

func TestIsWordInText_PunctuationBoundary(t *testing.T) {
	assert.True(t, service.IsWordInText("ENA", "contractor (ENA)."))
}
