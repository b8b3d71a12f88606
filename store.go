package main

import (
	"encoding/json"
	"errors"
	"log"

	"linko/models"
	"linko/pkg/profile"

	"gorm.io/gorm"
)

// The profile store accessor. One row per account, keyed by user id, with
// a separately unique username. Uniqueness is enforced by the store's
// indexes, not here.

// profilePatch carries a partial update; nil fields are left untouched.
type profilePatch struct {
	Bio         *string
	Links       *[]profile.Link
	SocialLinks *[]profile.SocialLink
}

func getProfileByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func findProfileByUsername(username string) (*models.Profile, error) {
	var p models.Profile
	if err := db.Where("username = ?", username).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ensureProfile returns the account's row, creating it with defaults on
// first editor load. Idempotent: an existing row is never overwritten.
func ensureProfile(userID uint, fallbackUsername string) (*models.Profile, error) {
	p, err := getProfileByUserID(userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	row := models.Profile{
		UserID:      userID,
		Username:    fallbackUsername,
		Bio:         profile.DefaultEditorBio,
		Links:       models.JSON("[]"),
		SocialLinks: models.JSON("[]"),
	}
	if err := db.Create(&row).Error; err != nil {
		// either we lost a create race with ourselves, or the username is
		// held by another account
		if existing, ferr := getProfileByUserID(userID); ferr == nil {
			return existing, nil
		}
		if isDuplicateError(err) {
			return nil, errUsernameTaken()
		}
		return nil, err
	}
	return &row, nil
}

// upsertProfile merges only the provided fields onto the existing row,
// keyed by account id; gorm stamps updated_at. Social links are deduped by
// platform (last write wins) before persisting. The legacy metadata mirror
// is refreshed best-effort afterwards.
func upsertProfile(userID uint, patch profilePatch) (*models.Profile, error) {
	updates := map[string]any{}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Links != nil {
		raw, err := json.Marshal(*patch.Links)
		if err != nil {
			return nil, err
		}
		updates["links"] = models.JSON(raw)
	}
	if patch.SocialLinks != nil {
		raw, err := json.Marshal(profile.DedupeSocial(*patch.SocialLinks))
		if err != nil {
			return nil, err
		}
		updates["social_links"] = models.JSON(raw)
	}
	if len(updates) > 0 {
		res := db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	p, err := getProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	mirrorAccountMetadata(p)
	return p, nil
}

// mirrorAccountMetadata refreshes the legacy account-metadata cache of
// {bio, links}. It is a secondary, eventually-divergent copy kept for an
// old dashboard; failures are logged, never fatal.
func mirrorAccountMetadata(p *models.Profile) {
	urls := []string{}
	for _, l := range profile.NormalizeLinks(p.Links) {
		urls = append(urls, l.URL)
	}
	raw, err := json.Marshal(map[string]any{"bio": p.Bio, "links": urls})
	if err == nil {
		err = db.Model(&models.User{}).Where("id = ?", p.UserID).Update("metadata", models.JSON(raw)).Error
	}
	if err != nil {
		log.Printf("metadata mirror for user %d: %v", p.UserID, err)
	}
}
