package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceClass is the balance-sheet classification of an asset or liability
type BalanceClass string

const (
	// BalanceClassCurrent covers items with a horizon of up to one year ("circulante")
	BalanceClassCurrent BalanceClass = "circulante"
	// BalanceClassNonCurrent covers longer-horizon items ("não circulante")
	BalanceClassNonCurrent BalanceClass = "nao_circulante"
)

// Fixed category taxonomy for balance-sheet bucketing. Classification is a
// lookup against these tables, not user-editable logic.
var assetClassByCategory = map[string]BalanceClass{
	"dinheiro":              BalanceClassCurrent,
	"conta_corrente":        BalanceClassCurrent,
	"poupanca":              BalanceClassCurrent,
	"aplicacao_curto_prazo": BalanceClassCurrent,
	"imovel":                BalanceClassNonCurrent,
	"veiculo":               BalanceClassNonCurrent,
	"previdencia":           BalanceClassNonCurrent,
	"participacao":          BalanceClassNonCurrent,
}

var liabilityClassByCategory = map[string]BalanceClass{
	"cartao_credito":           BalanceClassCurrent,
	"contas_a_pagar":           BalanceClassCurrent,
	"emprestimo_curto_prazo":   BalanceClassCurrent,
	"financiamento_imovel":     BalanceClassNonCurrent,
	"financiamento_veiculo":    BalanceClassNonCurrent,
	"emprestimo_longo_prazo":   BalanceClassNonCurrent,
	"financiamento_estudantil": BalanceClassNonCurrent,
}

// ClassifyAssetCategory returns the balance-sheet class for an asset
// category. Unknown categories fall into the non-current bucket.
func ClassifyAssetCategory(category string) BalanceClass {
	if class, ok := assetClassByCategory[category]; ok {
		return class
	}
	return BalanceClassNonCurrent
}

// ClassifyLiabilityCategory returns the balance-sheet class for a liability
// category. Unknown categories fall into the current bucket so debts are
// never understated in the short term.
func ClassifyLiabilityCategory(category string) BalanceClass {
	if class, ok := liabilityClassByCategory[category]; ok {
		return class
	}
	return BalanceClassCurrent
}

// Asset represents a patrimony asset in the domain layer
type Asset struct {
	ID           uuid.UUID
	Name         string
	Category     string
	CurrentValue decimal.Decimal
}

// Validate ensures the asset adheres to domain rules
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}
	if a.CurrentValue.IsNegative() {
		return errors.New("asset current value cannot be negative")
	}
	return nil
}

// Liability represents a patrimony liability in the domain layer
type Liability struct {
	ID              uuid.UUID
	Name            string
	Category        string
	RemainingAmount decimal.Decimal
}

// Validate ensures the liability adheres to domain rules
func (l *Liability) Validate() error {
	if l.Name == "" {
		return errors.New("liability name cannot be empty")
	}
	if l.RemainingAmount.IsNegative() {
		return errors.New("liability remaining amount cannot be negative")
	}
	return nil
}
