package notifier_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobscaffold-backend/internal/domain"
	"jobscaffold-backend/internal/events"
	"jobscaffold-backend/internal/service/notifier"
	"jobscaffold-backend/tests/mocks"
)

type notifierFixture struct {
	notifications *mocks.NotificationRepository
	users         *mocks.UserRepository
	projects      *mocks.ProjectRepository
	bus           *mocks.Publisher
	svc           *notifier.Service
}

func newNotifierFixture() *notifierFixture {
	f := &notifierFixture{
		notifications: new(mocks.NotificationRepository),
		users:         new(mocks.UserRepository),
		projects:      new(mocks.ProjectRepository),
		bus:           new(mocks.Publisher),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = notifier.NewService(f.notifications, f.users, f.projects, f.bus, logger)
	return f
}

func (f *notifierFixture) expectCreate() {
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.bus.On("Publish", mock.Anything, events.TopicNotificationCreated, mock.Anything).Return(nil)
}

func envelope(t *testing.T, topic string, record interface{}) events.Envelope {
	t.Helper()
	raw, err := json.Marshal(record)
	assert.NoError(t, err)
	return events.Envelope{ID: uuid.NewString(), Topic: topic, Record: raw}
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func TestCreate_PersistsAndPublishes(t *testing.T) {
	f := newNotifierFixture()
	userID := uuid.New()

	var stored *domain.Notification
	f.notifications.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Notification)
		}).
		Return(nil).Once()
	f.bus.On("Publish", mock.Anything, events.TopicNotificationCreated, mock.Anything).Return(nil).Once()

	notif, err := f.svc.Create(context.Background(), domain.CreateNotificationInput{
		UserID: userID,
		Title:  "Hello",
		Body:   "World",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, notif.ID)
	assert.Equal(t, domain.CategoryCustom, notif.Category)
	assert.Equal(t, stored, notif)
	f.bus.AssertExpectations(t)
}

func TestHandleProjectUpdateCreated_NotifiesCustomer(t *testing.T) {
	f := newNotifierFixture()
	customerID := uuid.New()
	projectID := uuid.New()

	f.projects.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:         projectID,
		CustomerID: uuidPtr(customerID),
	}, nil).Once()
	f.users.On("GetByID", mock.Anything, customerID).Return(&domain.User{ID: customerID}, nil).Once()

	var stored *domain.Notification
	f.notifications.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Notification)
		}).
		Return(nil).Once()
	f.bus.On("Publish", mock.Anything, events.TopicNotificationCreated, mock.Anything).Return(nil).Once()

	update := domain.ProjectUpdate{ID: uuid.New(), ProjectID: projectID, Message: "Framing done"}
	err := f.svc.HandleProjectUpdateCreated(context.Background(), envelope(t, events.TopicProjectUpdateCreated, update))

	assert.NoError(t, err)
	assert.Equal(t, customerID, stored.UserID)
	assert.Equal(t, domain.CategoryProjectUpdate, stored.Category)
	assert.Equal(t, "📸 New Project Update", stored.Title)
	assert.Equal(t, "Framing done", stored.Body)
	assert.Equal(t, projectID.String(), stored.Data["project_id"])
}

func TestHandleProjectUpdateCreated_SuppressedByPreference(t *testing.T) {
	f := newNotifierFixture()
	customerID := uuid.New()
	projectID := uuid.New()

	f.projects.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:         projectID,
		CustomerID: uuidPtr(customerID),
	}, nil).Once()
	f.users.On("GetByID", mock.Anything, customerID).Return(&domain.User{
		ID:          customerID,
		Preferences: domain.Preferences{"notif_projectUpdates": false},
	}, nil).Once()

	update := domain.ProjectUpdate{ID: uuid.New(), ProjectID: projectID, Message: "hi"}
	err := f.svc.HandleProjectUpdateCreated(context.Background(), envelope(t, events.TopicProjectUpdateCreated, update))

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
	f.bus.AssertNotCalled(t, "Publish")
}

func TestHandleProjectUpdateCreated_NoCustomer(t *testing.T) {
	f := newNotifierFixture()
	projectID := uuid.New()

	f.projects.On("GetByID", mock.Anything, projectID).Return(&domain.Project{ID: projectID}, nil).Once()

	update := domain.ProjectUpdate{ID: uuid.New(), ProjectID: projectID}
	err := f.svc.HandleProjectUpdateCreated(context.Background(), envelope(t, events.TopicProjectUpdateCreated, update))

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
}

func TestHandleFileCreated_SkipsCustomerOwnUpload(t *testing.T) {
	f := newNotifierFixture()
	customerID := uuid.New()
	projectID := uuid.New()

	f.projects.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:         projectID,
		CustomerID: uuidPtr(customerID),
	}, nil).Once()

	file := domain.ProjectFile{
		ID:         uuid.New(),
		ProjectID:  uuidPtr(projectID),
		FileName:   "plans.pdf",
		UploadedBy: customerID,
	}
	err := f.svc.HandleFileCreated(context.Background(), envelope(t, events.TopicFileCreated, file))

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
}

func TestHandleFileCreated_NotifiesCustomer(t *testing.T) {
	f := newNotifierFixture()
	customerID := uuid.New()
	contractorID := uuid.New()
	projectID := uuid.New()

	f.projects.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:         projectID,
		CustomerID: uuidPtr(customerID),
	}, nil).Once()
	f.expectCreate()

	file := domain.ProjectFile{
		ID:         uuid.New(),
		ProjectID:  uuidPtr(projectID),
		FileName:   "plans.pdf",
		UploadedBy: contractorID,
	}
	err := f.svc.HandleFileCreated(context.Background(), envelope(t, events.TopicFileCreated, file))

	assert.NoError(t, err)
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == customerID &&
			n.Category == domain.CategoryFileUpload &&
			n.Title == "📁 New File Uploaded" &&
			n.Body == "plans.pdf"
	}))
}

func TestHandleFileCreated_NoProject(t *testing.T) {
	f := newNotifierFixture()

	file := domain.ProjectFile{ID: uuid.New(), UploadedBy: uuid.New()}
	err := f.svc.HandleFileCreated(context.Background(), envelope(t, events.TopicFileCreated, file))

	assert.NoError(t, err)
	f.projects.AssertNotCalled(t, "GetByID")
	f.notifications.AssertNotCalled(t, "Create")
}

func TestHandleInvoiceCreated_FormatsAmount(t *testing.T) {
	f := newNotifierFixture()
	payerID := uuid.New()

	f.users.On("GetByID", mock.Anything, payerID).Return(&domain.User{ID: payerID}, nil).Once()
	f.expectCreate()

	invoice := domain.Invoice{
		ID:     uuid.New(),
		UserID: payerID,
		Title:  "Kitchen remodel",
		Amount: 1200.5,
	}
	err := f.svc.HandleInvoiceCreated(context.Background(), envelope(t, events.TopicInvoiceCreated, invoice))

	assert.NoError(t, err)
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Title == "💵 New Invoice" && n.Body == "Kitchen remodel - $1200.50"
	}))
}

func TestHandleInvoiceCreated_SuppressedByPreference(t *testing.T) {
	f := newNotifierFixture()
	payerID := uuid.New()

	f.users.On("GetByID", mock.Anything, payerID).Return(&domain.User{
		ID:          payerID,
		Preferences: domain.Preferences{"notif_invoices": false},
	}, nil).Once()

	invoice := domain.Invoice{ID: uuid.New(), UserID: payerID, Amount: 10}
	err := f.svc.HandleInvoiceCreated(context.Background(), envelope(t, events.TopicInvoiceCreated, invoice))

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
}

func TestHandleMessageCreated_TitleCarriesSenderName(t *testing.T) {
	f := newNotifierFixture()
	senderID := uuid.New()
	recipientID := uuid.New()

	f.users.On("GetByID", mock.Anything, recipientID).Return(&domain.User{ID: recipientID}, nil).Once()
	f.users.On("GetByID", mock.Anything, senderID).Return(&domain.User{ID: senderID, Name: "Maria"}, nil).Once()
	f.expectCreate()

	msg := domain.Message{ID: uuid.New(), SenderID: senderID, RecipientID: recipientID, Text: "On my way"}
	err := f.svc.HandleMessageCreated(context.Background(), envelope(t, events.TopicMessageCreated, msg))

	assert.NoError(t, err)
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Title == "💬 Maria" && n.Body == "On my way" && n.UserID == recipientID
	}))
}

func TestHandleMessageCreated_UnknownSenderFallsBack(t *testing.T) {
	f := newNotifierFixture()
	senderID := uuid.New()
	recipientID := uuid.New()

	f.users.On("GetByID", mock.Anything, recipientID).Return(&domain.User{ID: recipientID}, nil).Once()
	f.users.On("GetByID", mock.Anything, senderID).Return(nil, assert.AnError).Once()
	f.expectCreate()

	msg := domain.Message{ID: uuid.New(), SenderID: senderID, RecipientID: recipientID, Text: "hi"}
	err := f.svc.HandleMessageCreated(context.Background(), envelope(t, events.TopicMessageCreated, msg))

	assert.NoError(t, err)
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Title == "💬 Someone"
	}))
}

func TestHandleContractUpdated_FiresOncePerParticipantOnTransition(t *testing.T) {
	f := newNotifierFixture()
	clientID := uuid.New()
	contractorID := uuid.New()

	f.expectCreate()

	after := domain.Contract{
		ID:           uuid.New(),
		Title:        "Deck build",
		Status:       "completed",
		UserIDs:      []uuid.UUID{clientID},
		ClientID:     uuidPtr(clientID),
		ContractorID: uuidPtr(contractorID),
	}
	before := after
	before.Status = "active"

	beforeRaw, _ := json.Marshal(before)
	afterRaw, _ := json.Marshal(after)
	err := f.svc.HandleContractUpdated(context.Background(), events.Envelope{
		ID:     uuid.NewString(),
		Topic:  events.TopicContractUpdated,
		Record: afterRaw,
		Before: beforeRaw,
	})

	assert.NoError(t, err)
	f.notifications.AssertNumberOfCalls(t, "Create", 2)
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == clientID && n.Body == "Deck build has been completed."
	}))
	f.notifications.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == contractorID
	}))
}

func TestHandleContractUpdated_AlreadyCompletedIsIgnored(t *testing.T) {
	f := newNotifierFixture()

	contract := domain.Contract{
		ID:       uuid.New(),
		Status:   "completed",
		ClientID: uuidPtr(uuid.New()),
	}
	raw, _ := json.Marshal(contract)
	err := f.svc.HandleContractUpdated(context.Background(), events.Envelope{
		ID:     uuid.NewString(),
		Topic:  events.TopicContractUpdated,
		Record: raw,
		Before: raw,
	})

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
}

func TestHandleContractUpdated_NotCompletedIsIgnored(t *testing.T) {
	f := newNotifierFixture()

	after := domain.Contract{ID: uuid.New(), Status: "active", ClientID: uuidPtr(uuid.New())}
	err := f.svc.HandleContractUpdated(context.Background(), envelope(t, events.TopicContractUpdated, after))

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Create")
}
