package services

import (
	"context"
	"fmt"

	"portico/internal/clients/circle"
	"portico/internal/clients/payments"
	"portico/internal/models/db_models"
)

// In-memory collaborator fakes. They mirror the real contracts the services
// rely on: repositories answer (nil, nil) on a miss, the circle admin client
// answers with the canonical sentinels.

type fakeUserRepository struct {
	users map[string]*db_models.User

	upsertErr    error
	findErr      error
	setMemberErr error
	profileErr   error

	upsertCalls  int
	profileCalls int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*db_models.User{}}
}

func (f *fakeUserRepository) Upsert(_ context.Context, user *db_models.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertCalls++
	if existing, ok := f.users[user.ID]; ok {
		existing.Email = user.Email
		existing.Name = user.Name
		existing.PaymentCustomerID = user.PaymentCustomerID
		return nil
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*db_models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[id], nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, id, email, name string) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profileCalls++
	if user, ok := f.users[id]; ok {
		user.Email = email
		user.Name = name
	}
	return nil
}

func (f *fakeUserRepository) SetCircleMemberID(_ context.Context, id string, memberID int64) error {
	if f.setMemberErr != nil {
		return f.setMemberErr
	}
	if user, ok := f.users[id]; ok {
		user.CircleMemberID = &memberID
	}
	return nil
}

type fakeCommunityRepository struct {
	bySlug map[string]*db_models.Community

	listErr   error
	findErr   error
	createErr error
	updateErr error
}

func newFakeCommunityRepository(communities ...*db_models.Community) *fakeCommunityRepository {
	f := &fakeCommunityRepository{bySlug: map[string]*db_models.Community{}}
	for i, community := range communities {
		if community.ID == 0 {
			community.ID = uint(i + 1)
		}
		f.bySlug[community.Slug] = community
	}
	return f
}

func (f *fakeCommunityRepository) ListAll(_ context.Context) ([]db_models.Community, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]db_models.Community, 0, len(f.bySlug))
	for _, community := range f.bySlug {
		out = append(out, *community)
	}
	return out, nil
}

func (f *fakeCommunityRepository) FindBySlug(_ context.Context, slug string) (*db_models.Community, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.bySlug[slug], nil
}

func (f *fakeCommunityRepository) Create(_ context.Context, community *db_models.Community) error {
	if f.createErr != nil {
		return f.createErr
	}
	community.ID = uint(len(f.bySlug) + 1)
	f.bySlug[community.Slug] = community
	return nil
}

func (f *fakeCommunityRepository) Update(_ context.Context, community *db_models.Community) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.bySlug[community.Slug] = community
	return nil
}

type statusWrite struct {
	id      uint
	status  db_models.SubscriptionStatus
	endedAt *int64
}

type fakeSubscriptionRepository struct {
	byPair map[string]*db_models.Subscription
	nextID uint

	upsertErr     error
	findErr       error
	setStatusErr  error
	transitionErr error

	statusWrites    []statusWrite
	transitionCalls int
}

func newFakeSubscriptionRepository(subs ...*db_models.Subscription) *fakeSubscriptionRepository {
	f := &fakeSubscriptionRepository{byPair: map[string]*db_models.Subscription{}}
	for _, sub := range subs {
		f.nextID++
		if sub.ID == 0 {
			sub.ID = f.nextID
		}
		f.byPair[pairKey(sub.UserID, sub.CommunityID)] = sub
	}
	return f
}

func pairKey(userID string, communityID uint) string {
	return fmt.Sprintf("%s|%d", userID, communityID)
}

func (f *fakeSubscriptionRepository) rows() []*db_models.Subscription {
	out := make([]*db_models.Subscription, 0, len(f.byPair))
	for _, sub := range f.byPair {
		out = append(out, sub)
	}
	return out
}

func (f *fakeSubscriptionRepository) Upsert(_ context.Context, sub *db_models.Subscription) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := pairKey(sub.UserID, sub.CommunityID)
	if existing, ok := f.byPair[key]; ok {
		sub.ID = existing.ID
		clone := *sub
		f.byPair[key] = &clone
		return nil
	}
	f.nextID++
	sub.ID = f.nextID
	clone := *sub
	f.byPair[key] = &clone
	return nil
}

func (f *fakeSubscriptionRepository) FindByPaymentSubscriptionID(_ context.Context, ref string) (*db_models.Subscription, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, sub := range f.byPair {
		if sub.PaymentSubscriptionID == ref {
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepository) FindByUserAndCommunity(_ context.Context, userID string, communityID uint) (*db_models.Subscription, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byPair[pairKey(userID, communityID)], nil
}

func (f *fakeSubscriptionRepository) SetStatusAndEndedAt(_ context.Context, id uint, status db_models.SubscriptionStatus, endedAt *int64) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	f.statusWrites = append(f.statusWrites, statusWrite{id: id, status: status, endedAt: endedAt})
	for _, sub := range f.byPair {
		if sub.ID == id {
			sub.Status = status
			sub.EndedAt = endedAt
		}
	}
	return nil
}

func (f *fakeSubscriptionRepository) TransitionStatus(_ context.Context, id uint, from, to db_models.SubscriptionStatus) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.transitionCalls++
	for _, sub := range f.byPair {
		if sub.ID == id && sub.Status == from {
			sub.Status = to
		}
	}
	return nil
}

type spaceMemberCall struct {
	memberID int64
	spaceID  int64
}

type removeMemberCall struct {
	email   string
	spaceID int64
}

type fakeCircleAdmin struct {
	membersByEmail map[string]*circle.Member
	nextMemberID   int64
	space          *circle.Space

	searchErr   error
	createErr   error
	addErr      error
	removeErr   error
	getSpaceErr error

	searchCalls int
	createCalls int
	lastCreate  circle.CreateMemberParams
	addCalls    []spaceMemberCall
	removeCalls []removeMemberCall
}

func newFakeCircleAdmin() *fakeCircleAdmin {
	return &fakeCircleAdmin{
		membersByEmail: map[string]*circle.Member{},
		nextMemberID:   9000,
	}
}

func (f *fakeCircleAdmin) SearchMemberByEmail(_ context.Context, email string) (*circle.Member, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if member, ok := f.membersByEmail[email]; ok {
		return member, nil
	}
	return nil, circle.ErrMemberNotFound
}

func (f *fakeCircleAdmin) CreateMember(_ context.Context, params circle.CreateMemberParams) (*circle.Member, error) {
	f.createCalls++
	f.lastCreate = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextMemberID++
	member := &circle.Member{ID: f.nextMemberID, Email: params.Email, Name: params.Name}
	f.membersByEmail[params.Email] = member
	return member, nil
}

func (f *fakeCircleAdmin) AddSpaceMember(_ context.Context, memberID, spaceID int64) error {
	f.addCalls = append(f.addCalls, spaceMemberCall{memberID: memberID, spaceID: spaceID})
	return f.addErr
}

func (f *fakeCircleAdmin) RemoveSpaceMember(_ context.Context, email string, spaceID int64) error {
	f.removeCalls = append(f.removeCalls, removeMemberCall{email: email, spaceID: spaceID})
	return f.removeErr
}

func (f *fakeCircleAdmin) GetSpace(_ context.Context, spaceID int64) (*circle.Space, error) {
	if f.getSpaceErr != nil {
		return nil, f.getSpaceErr
	}
	if f.space != nil {
		return f.space, nil
	}
	return &circle.Space{ID: spaceID}, nil
}

type fakeGateway struct {
	session   *payments.CheckoutSession
	getErr    error
	created   []payments.CheckoutSessionParams
	createRes *payments.CheckoutSession
	createErr error
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, params payments.CheckoutSessionParams) (*payments.CheckoutSession, error) {
	f.created = append(f.created, params)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createRes != nil {
		return f.createRes, nil
	}
	return &payments.CheckoutSession{ID: "cs_new", URL: "https://pay.example.com/cs_new"}, nil
}

func (f *fakeGateway) GetCheckoutSession(_ context.Context, sessionID string) (*payments.CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.session, nil
}

type fakeMemberClient struct {
	token    *circle.MemberToken
	tokenErr error
	space    *circle.Space
	spaceErr error
	posts    *circle.PostsPage
	postsErr error

	tokenCalls int
}

func (f *fakeMemberClient) Token(_ context.Context, email string) (*circle.MemberToken, error) {
	f.tokenCalls++
	if f.tokenErr != nil {
		return nil, f.tokenErr
	}
	if f.token != nil {
		return f.token, nil
	}
	return &circle.MemberToken{AccessToken: "member-jwt", CommunityMemberID: 9001}, nil
}

func (f *fakeMemberClient) GetSpace(_ context.Context, _ string, spaceID int64) (*circle.Space, error) {
	if f.spaceErr != nil {
		return nil, f.spaceErr
	}
	if f.space != nil {
		return f.space, nil
	}
	return &circle.Space{ID: spaceID}, nil
}

func (f *fakeMemberClient) ListPosts(_ context.Context, _ string, _ int64, page, perPage int) (*circle.PostsPage, error) {
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	if f.posts != nil {
		return f.posts, nil
	}
	return &circle.PostsPage{Page: page, PerPage: perPage}, nil
}
