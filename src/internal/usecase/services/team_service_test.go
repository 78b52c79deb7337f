package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/ledgerdesk/src/internal/domain"
	"github.com/api-sage/ledgerdesk/src/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamServiceGetTeamRedactsForEmployees(t *testing.T) {
	f := newFixture(t)
	employee := f.addUser(t, "eve@acme.test", domain.RoleEmployee)
	team := services.NewTeamService(f.users)

	asOwner, err := team.GetTeam(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, asOwner.Data.TeamMembers, 2)
	assert.Equal(t, "owner", asOwner.Data.CurrentUserRole)
	assert.Equal(t, employee.ID, asOwner.Data.TeamMembers[0].ID)
	assert.NotNil(t, asOwner.Data.TeamMembers[0].IsApproved)

	asEmployee, err := team.GetTeam(context.Background(), employee.Principal())
	require.NoError(t, err)
	for _, member := range asEmployee.Data.TeamMembers {
		assert.Nil(t, member.IsApproved)
		assert.Nil(t, member.ApprovedBy)
	}
}

func TestTeamServiceDecisionGuards(t *testing.T) {
	f := newFixture(t)
	employee := f.addUser(t, "eve@acme.test", domain.RoleEmployee)
	team := services.NewTeamService(f.users)

	_, err := team.ApproveMember(context.Background(), employee.Principal(), f.owner.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = team.RejectMember(context.Background(), f.owner, f.owner.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = team.ApproveMember(context.Background(), f.owner, "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	outsider := domain.Principal{ID: "x", CompanyID: "other", Role: domain.RoleAdmin}
	_, err = team.ApproveMember(context.Background(), outsider, employee.ID)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestTeamServiceProfileAndUsers(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "eve@acme.test", domain.RoleEmployee)
	team := services.NewTeamService(f.users)

	profile, err := team.GetProfile(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Equal(t, f.owner.Email, profile.Data.Email)
	assert.True(t, profile.Data.IsApproved)

	users, err := team.ListCompanyUsers(context.Background(), f.owner)
	require.NoError(t, err)
	assert.Len(t, *users.Data, 2)

	_, err = team.GetProfile(context.Background(), domain.Principal{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
