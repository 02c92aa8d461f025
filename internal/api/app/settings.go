package app

import (
	"context"

	"locmate/internal/ports"
)

type SettingsAPI struct {
	repo ports.SettingsRepository
}

func NewSettingsAPI(repo ports.SettingsRepository) *SettingsAPI { return &SettingsAPI{repo: repo} }

func (a *SettingsAPI) Get(key string) (string, error) {
	return a.repo.Get(context.Background(), key)
}

func (a *SettingsAPI) Set(key, value string) (bool, error) {
	if err := a.repo.Set(context.Background(), key, value); err != nil {
		return false, err
	}
	return true, nil
}
