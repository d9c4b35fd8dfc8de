package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSQL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain statement", "SELECT 1", "SELECT 1"},
		{"sql fence", "```sql\nSELECT * FROM BankPaymentTransaction\n```", "SELECT * FROM BankPaymentTransaction"},
		{"uppercase fence", "```SQL\nSELECT 1\n```", "SELECT 1"},
		{"bare fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"json fence", "```json\n{\"is_relevant\": true}\n```", "{\"is_relevant\": true}"},
		{"inline backticks", "SELECT `AMOUNT` FROM AdyenPaymentTransaction", "SELECT AMOUNT FROM AdyenPaymentTransaction"},
		{"surrounding whitespace", "  SELECT 1  ", "SELECT 1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanSQL(tt.input))
		})
	}
}

func TestIsReadOnly_Selects(t *testing.T) {
	assert.True(t, IsReadOnly("SELECT AMOUNT FROM AdyenPaymentTransaction WHERE PAYMENTSTATUS = 'Settled'"))
	assert.True(t, IsReadOnly("SELECT a.PSPREFERENCE FROM AdyenPaymentTransaction a JOIN BankPaymentTransaction b ON a.PSPREFERENCE = b.PSPREFERENCE"))
}

func TestIsReadOnly_TSQLConstructs(t *testing.T) {
	// TOP and bracketed identifiers do not parse with the MySQL grammar but
	// must still pass the keyword screen.
	assert.True(t, IsReadOnly("SELECT TOP 10 * FROM AdyenPaymentTransaction;"))
	assert.True(t, IsReadOnly("SELECT [AMOUNT] FROM [AdyenPaymentTransaction]"))
	assert.True(t, IsReadOnly("WITH totals AS (SELECT TOP 5 AMOUNT FROM BankPaymentTransaction) SELECT * FROM totals"))
}

func TestIsReadOnly_RejectsWrites(t *testing.T) {
	assert.False(t, IsReadOnly("DELETE FROM AdyenPaymentTransaction"))
	assert.False(t, IsReadOnly("DROP TABLE BankPaymentTransaction"))
	assert.False(t, IsReadOnly("UPDATE AdyenPaymentTransaction SET AMOUNT = 0"))
	assert.False(t, IsReadOnly("INSERT INTO AdyenPaymentTransaction VALUES (1)"))
	assert.False(t, IsReadOnly("TRUNCATE TABLE [AdyenPaymentTransaction]"))
}

func TestIsReadOnly_RejectsMultiStatement(t *testing.T) {
	assert.False(t, IsReadOnly("SELECT TOP 1 * FROM AdyenPaymentTransaction; DROP TABLE BankPaymentTransaction"))
	assert.False(t, IsReadOnly(""))
	assert.False(t, IsReadOnly("tell me about settlements"))
}
