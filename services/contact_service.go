// services/contact_service.go
package services

import (
	"context"
	"log"
	"math"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/utils"
)

// ContactStore is the persistence surface for contact events
type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindHistory(ctx context.Context, userID primitive.ObjectID, direction string, skip, limit int64) ([]models.Contact, int64, error)
}

// ContactUserStore is the slice of user persistence the contact flow touches
type ContactUserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ContactService records call/message attempts between users so each side
// can review who they reached out to.
type ContactService struct {
	contacts ContactStore
	users    ContactUserStore
	logger   *log.Logger
}

func NewContactService(contacts ContactStore, users ContactUserStore) *ContactService {
	return &ContactService{
		contacts: contacts,
		users:    users,
		logger:   log.New(os.Stdout, "[CONTACT] ", log.LstdFlags),
	}
}

// TrackContact records one contact event from the caller to another user
func (s *ContactService) TrackContact(ctx context.Context, fromUserID, toUserID primitive.ObjectID, contactType string) error {
	if fromUserID == toUserID {
		return utils.NewValidationError("Cannot contact yourself")
	}
	if contactType != models.ContactTypeCall && contactType != models.ContactTypeMessage {
		return utils.NewValidationError("Contact type must be call or message")
	}

	target, err := s.users.FindByID(ctx, toUserID)
	if err != nil {
		return utils.NewDatabaseError("Failed to track contact", err)
	}
	if target == nil {
		return utils.NewNotFoundError("User not found")
	}

	contact := &models.Contact{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Type:       contactType,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Printf("Error tracking contact %s -> %s: %v", fromUserID.Hex(), toUserID.Hex(), err)
		return utils.NewDatabaseError("Failed to track contact", err)
	}

	s.logger.Printf("Contact tracked: %s %s -> %s", contactType, fromUserID.Hex(), toUserID.Hex())
	return nil
}

// GetContactHistory returns the caller's contact events with both parties
// resolved. Direction narrows to "sent" or "received"; empty means both.
func (s *ContactService) GetContactHistory(ctx context.Context, userID primitive.ObjectID, direction string, page, limit int) (*models.ContactHistoryResponse, error) {
	if direction != "" && direction != "sent" && direction != "received" {
		return nil, utils.NewValidationError("Direction must be sent or received")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	skip := int64((page - 1) * limit)

	contacts, total, err := s.contacts.FindHistory(ctx, userID, direction, skip, int64(limit))
	if err != nil {
		s.logger.Printf("Error fetching contact history for %s: %v", userID.Hex(), err)
		return nil, utils.NewDatabaseError("Failed to fetch contact history", err)
	}

	// Resolve each party once even when they appear in several entries
	parties := make(map[primitive.ObjectID]models.ContactParty)
	responses := make([]models.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, models.ContactResponse{
			ID:        contact.ID.Hex(),
			Type:      contact.Type,
			FromUser:  s.resolveParty(ctx, parties, contact.FromUserID),
			ToUser:    s.resolveParty(ctx, parties, contact.ToUserID),
			CreatedAt: contact.CreatedAt,
		})
	}

	return &models.ContactHistoryResponse{
		Success:  true,
		Contacts: responses,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

func (s *ContactService) resolveParty(ctx context.Context, cache map[primitive.ObjectID]models.ContactParty, userID primitive.ObjectID) models.ContactParty {
	if party, ok := cache[userID]; ok {
		return party
	}

	party := models.ContactParty{ID: userID.Hex()}
	if user, err := s.users.FindByID(ctx, userID); err == nil && user != nil {
		party.Name = user.Name
		party.Phone = user.Phone
		party.ProfilePicURL = user.ProfilePicURL
	}

	cache[userID] = party
	return party
}
