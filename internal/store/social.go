package store

import (
	"github.com/oViqa/Raihan/internal/models"
)

// GetSocialMediaLinks returns the seeded links, oldest first. There is
// no write path for these; they are maintained by migration.
func (s *Store) GetSocialMediaLinks() ([]models.SocialMediaLink, error) {
	rows, err := s.DB.Query(`SELECT id, platform, url, COALESCE(icon, '') as icon, created_at FROM social_media_links ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.SocialMediaLink
	for rows.Next() {
		var l models.SocialMediaLink
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &l.Icon, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
