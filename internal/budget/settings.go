// Package budget persists budget settings and evaluates spending against them.
package budget

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gastos/internal/core"
)

const settingsSchemaVersion = 2

// settingsDocument is the on-disk layout. Version 1 carried a single
// monthlyBudget amount; version 2 added period, threshold and alert toggle.
// Amounts are decimal unit values, the same convention as the expense file.
type settingsDocument struct {
	SchemaVersion  int         `json:"schemaVersion"`
	BudgetAmount   *core.Money `json:"budgetAmount,omitempty"`
	BudgetPeriod   *string     `json:"budgetPeriod,omitempty"`
	AlertThreshold *int        `json:"alertThreshold,omitempty"`
	EnableAlerts   *bool       `json:"enableAlerts,omitempty"`

	// Legacy version 1 field, also in decimal units.
	MonthlyBudget *core.Money `json:"monthlyBudget,omitempty"`
}

// SettingsUpdate is a partial change to the stored budget settings.
// Nil fields keep their current value.
type SettingsUpdate struct {
	BudgetAmount   *core.Money
	BudgetPeriod   *core.BudgetPeriod
	AlertThreshold *int
	EnableAlerts   *bool
}

// Manager loads budget settings from a JSON file and writes them back on
// every update. A missing or unreadable file yields the defaults.
type Manager struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewManager(path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{path: path, logger: logger}
}

// Get returns the current settings, falling back to defaults when the
// file is absent or corrupt.
func (m *Manager) Get() core.BudgetSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// Update applies a partial change and persists the result. The merged
// settings are returned even when the write fails, so callers keep a
// working in-memory view.
func (m *Manager) Update(update SettingsUpdate) (core.BudgetSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings := m.load()
	if update.BudgetAmount != nil {
		settings.BudgetAmount = *update.BudgetAmount
	}
	if update.BudgetPeriod != nil {
		settings.BudgetPeriod = *update.BudgetPeriod
	}
	if update.AlertThreshold != nil {
		settings.AlertThreshold = *update.AlertThreshold
	}
	if update.EnableAlerts != nil {
		settings.EnableAlerts = *update.EnableAlerts
	}
	if err := settings.Validate(); err != nil {
		return core.BudgetSettings{}, fmt.Errorf("invalid budget settings: %w", err)
	}

	if err := m.write(settings); err != nil {
		m.logger.Warn("failed to persist budget settings", "path", m.path, "error", err)
		return settings, fmt.Errorf("persisting budget settings: %w", err)
	}
	return settings, nil
}

func (m *Manager) load() core.BudgetSettings {
	settings := core.DefaultBudgetSettings()

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("unreadable budget settings file, using defaults", "path", m.path, "error", err)
		}
		return settings
	}

	var doc settingsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		m.logger.Warn("corrupt budget settings file, using defaults", "path", m.path, "error", err)
		return settings
	}

	// Version 1 documents store the amount under monthlyBudget and imply
	// a monthly period.
	if doc.SchemaVersion < settingsSchemaVersion && doc.MonthlyBudget != nil {
		settings.BudgetAmount = *doc.MonthlyBudget
		settings.BudgetPeriod = core.PeriodMonthly
		return settings
	}

	if doc.BudgetAmount != nil {
		settings.BudgetAmount = *doc.BudgetAmount
	}
	if doc.BudgetPeriod != nil {
		period := core.BudgetPeriod(*doc.BudgetPeriod)
		if period.Valid() {
			settings.BudgetPeriod = period
		}
	}
	if doc.AlertThreshold != nil {
		settings.AlertThreshold = *doc.AlertThreshold
	}
	if doc.EnableAlerts != nil {
		settings.EnableAlerts = *doc.EnableAlerts
	}
	if settings.Validate() != nil {
		return core.DefaultBudgetSettings()
	}
	return settings
}

func (m *Manager) write(settings core.BudgetSettings) error {
	amount := settings.BudgetAmount
	period := string(settings.BudgetPeriod)
	threshold := settings.AlertThreshold
	alerts := settings.EnableAlerts

	doc := settingsDocument{
		SchemaVersion:  settingsSchemaVersion,
		BudgetAmount:   &amount,
		BudgetPeriod:   &period,
		AlertThreshold: &threshold,
		EnableAlerts:   &alerts,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}
	if err := os.WriteFile(m.path, raw, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
