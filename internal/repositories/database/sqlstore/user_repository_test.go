package sqlstore

import (
	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *StoreTestSuite) TestFindUser() {
	byID, err := s.users.FindUserByID(s.ctx, s.alice)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", byID.Username)
	assert.Equal(s.T(), domain.ProviderLocal, byID.AuthProvider)

	byEmail, err := s.users.FindUserByEmail(s.ctx, "bob@example.com")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.bob, byEmail.ID)

	_, err = s.users.FindUserByEmail(s.ctx, "nobody@example.com")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveUserDuplicate() {
	err := s.users.SaveUser(s.ctx, domain.User{
		ID:           uuid.NewString(),
		Username:     "alice",
		Email:        "another@example.com",
		AuthProvider: domain.ProviderLocal,
		Timestamps:   domain.Timestamps{CreatedAt: s.base, UpdatedAt: s.base},
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
}

func (s *StoreTestSuite) TestExistsByUsernameOrEmail() {
	exists, err := s.users.ExistsByUsernameOrEmail(s.ctx, "alice", "fresh@example.com")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.users.ExistsByUsernameOrEmail(s.ctx, "fresh", "bob@example.com")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)

	exists, err = s.users.ExistsByUsernameOrEmail(s.ctx, "fresh", "fresh@example.com")
	require.NoError(s.T(), err)
	assert.False(s.T(), exists)
}
