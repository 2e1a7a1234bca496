package mapping

import (
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        string(d.Type),
		DueDate:     d.DueDate,
		Status:      string(d.Status),
		Timestamps:  ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        domain.AccountType(m.Type),
		DueDate:     m.DueDate,
		Status:      domain.AccountStatus(m.Status),
		Timestamps:  ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

func ToModelTimestamps(d domain.Timestamps) models.Timestamps {
	return models.Timestamps{
		CreatedAt: models.DBTime{Time: d.CreatedAt},
		UpdatedAt: models.DBTime{Time: d.UpdatedAt},
	}
}

func ToDomainTimestamps(m models.Timestamps) domain.Timestamps {
	return domain.Timestamps{
		CreatedAt: m.CreatedAt.Time,
		UpdatedAt: m.UpdatedAt.Time,
	}
}
