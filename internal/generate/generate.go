// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate builds sample bank statements for exercising the
// extraction pipeline: a fixed demo statement, seeded random statements and
// a password-protected fixture.
package generate

import (
	"bytes"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/statement-tools/internal/encryption"
)

// Transaction is one rendered statement line. Amount is negative for debits.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Balance     decimal.Decimal
}

// Statement is everything printed on a sample statement.
type Statement struct {
	BankName      string
	AccountHolder string
	AccountNumber string
	Address       string
	From, To      time.Time

	Opening      decimal.Decimal
	Closing      decimal.Decimal
	TotalCredits decimal.Decimal
	TotalDebits  decimal.Decimal

	// DatedBalances prints the period dates next to the opening and closing
	// balance labels.
	DatedBalances bool

	Transactions []Transaction
}

var (
	creditMerchants = []string{
		"Direct Deposit - Payroll",
		"Transfer from Savings",
		"Interest Payment",
		"Refund - Amazon",
		"Venmo Transfer",
	}
	debitMerchants = []string{
		"Amazon.com Purchase",
		"Netflix Subscription",
		"Grocery Store - Whole Foods",
		"Gas Station - Shell",
		"Restaurant - Chipotle",
		"Electric Company - Bill Pay",
		"Water Utility",
		"Internet Service",
		"Coffee Shop - Starbucks",
		"ATM Withdrawal",
		"Online Shopping - eBay",
		"Phone Bill - Verizon",
		"Insurance Payment",
		"Gym Membership",
	}
	creditAmounts = []int{2500, 3000, 3500, 4000, 500, 100, 50, 25}
	debitAmounts  = []int{5, 10, 15, 20, 25, 50, 75, 100, 150, 200, 250}
)

const (
	// transactionChance is the probability of a transaction on any day.
	transactionChance = 0.6
	// creditChance is the probability that a transaction is a credit.
	creditChance = 0.2

	defaultHolder  = "John Doe"
	defaultAddress = "123 Main Street, New York, NY 10001"
)

// NewFaker returns a seeded faker. A zero seed draws a random one.
func NewFaker(seed int64) *gofakeit.Faker {
	return gofakeit.New(seed)
}

// Transactions simulates days of account activity starting at start. The
// opening balance is a whole dollar amount in [5000, 15000].
func Transactions(start time.Time, days int, faker *gofakeit.Faker) (txns []Transaction, opening, closing decimal.Decimal) {
	balance := decimal.NewFromInt(int64(faker.Number(5000, 15000)))
	opening = balance

	day := start
	for i := 0; i < days; i++ {
		if faker.Float64() < transactionChance {
			var amt decimal.Decimal
			var desc string
			if faker.Float64() < creditChance {
				amt = decimal.NewFromInt(int64(faker.RandomInt(creditAmounts)))
				desc = faker.RandomString(creditMerchants)
			} else {
				amt = decimal.NewFromInt(int64(faker.RandomInt(debitAmounts))).Neg()
				desc = faker.RandomString(debitMerchants)
			}
			balance = balance.Add(amt)
			txns = append(txns, Transaction{Date: day, Description: desc, Amount: amt, Balance: balance})
		}
		day = day.AddDate(0, 0, 1)
	}
	return txns, opening, balance
}

// Totals returns the sum of credits and the absolute sum of debits.
func Totals(txns []Transaction) (credits, debits decimal.Decimal) {
	for _, t := range txns {
		if t.Amount.IsPositive() {
			credits = credits.Add(t.Amount)
		} else {
			debits = debits.Add(t.Amount.Abs())
		}
	}
	return credits, debits
}

// Random builds a statement for the days ending at end.
func Random(bankName, accountNumber string, days int, end time.Time, faker *gofakeit.Faker) Statement {
	start := end.AddDate(0, 0, -days)
	txns, opening, closing := Transactions(start, days, faker)
	credits, debits := Totals(txns)
	return Statement{
		BankName:      bankName,
		AccountHolder: defaultHolder,
		AccountNumber: accountNumber,
		Address:       defaultAddress,
		From:          start,
		To:            end,
		Opening:       opening,
		Closing:       closing,
		TotalCredits:  credits,
		TotalDebits:   debits,
		Transactions:  txns,
	}
}

// Preset names one of the standard sample statements.
type Preset struct {
	File          string
	BankName      string
	AccountNumber string
	Days          int
}

// Presets returns the sample statements written by the generate command.
// The second Chase statement shares the first one's account.
func Presets() []Preset {
	return []Preset{
		{File: "chase_checking_jan.pdf", BankName: "Chase Bank", AccountNumber: "****4521", Days: 30},
		{File: "wells_fargo_checking.pdf", BankName: "Wells Fargo", AccountNumber: "****7892", Days: 30},
		{File: "chase_checking_feb.pdf", BankName: "Chase Bank", AccountNumber: "****4521", Days: 28},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func line(d time.Time, desc, amount, balance string) Transaction {
	return Transaction{
		Date:        d,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Balance:     decimal.RequireFromString(balance),
	}
}

// Demo returns the fixed CHASE BANK sample statement for January 2024.
func Demo() Statement {
	jan := func(day int) time.Time { return date(2024, time.January, day) }
	return Statement{
		BankName:      "CHASE BANK",
		AccountHolder: defaultHolder,
		AccountNumber: "****4521",
		Address:       defaultAddress,
		From:          jan(1),
		To:            jan(31),
		Opening:       decimal.RequireFromString("9000.00"),
		Closing:       decimal.RequireFromString("12410.01"),
		TotalCredits:  decimal.RequireFromString("4500.00"),
		TotalDebits:   decimal.RequireFromString("1089.99"),
		DatedBalances: true,
		Transactions: []Transaction{
			line(jan(5), "Direct Deposit - ABC Corp Payroll", "3500.00", "12500.00"),
			line(jan(8), "Amazon.com Purchase", "-89.99", "12410.01"),
			line(jan(10), "Netflix Subscription", "-15.99", "12394.02"),
			line(jan(12), "Grocery Store - Whole Foods", "-156.43", "12237.59"),
			line(jan(15), "Transfer from Savings", "1000.00", "13237.59"),
			line(jan(18), "Electric Company - Bill Pay", "-125.00", "13112.59"),
			line(jan(20), "Restaurant - Chipotle", "-18.45", "13094.14"),
			line(jan(22), "ATM Withdrawal", "-200.00", "12894.14"),
			line(jan(25), "Gas Station - Shell", "-45.00", "12849.14"),
			line(jan(28), "Online Shopping - eBay", "-239.13", "12610.01"),
			line(jan(30), "Interest Payment", "0.50", "12610.51"),
			line(jan(31), "Service Fee", "-200.50", "12410.01"),
		},
	}
}

// TestBank returns the small statement used for the encrypted fixture.
func TestBank() Statement {
	jan := func(day int) time.Time { return date(2024, time.January, day) }
	return Statement{
		BankName:      "Test Bank",
		AccountHolder: "Test User",
		AccountNumber: "****9999",
		Address:       "456 Test Street, Test City, TC 12345",
		From:          jan(1),
		To:            jan(31),
		Opening:       decimal.RequireFromString("1000.00"),
		Closing:       decimal.RequireFromString("1300.00"),
		TotalCredits:  decimal.RequireFromString("500.00"),
		TotalDebits:   decimal.RequireFromString("200.00"),
		Transactions: []Transaction{
			line(jan(5), "Test Deposit", "500.00", "1500.00"),
			line(jan(10), "Test Withdrawal", "-200.00", "1300.00"),
		},
	}
}

// EncryptedSample renders TestBank and protects it with password as both the
// user and the owner password.
func EncryptedSample(password string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, TestBank()); err != nil {
		return nil, err
	}
	return encryption.Encrypt(buf.Bytes(), password, password)
}
