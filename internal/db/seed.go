package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/movie-social/internal/reaction"
)

var demoTitles = []string{
	"Heat", "Alien", "Arrival", "Parasite", "Amélie", "Rashomon", "Oldboy",
	"Zodiac", "Memento", "Fargo", "Brazil", "Se7en", "Tampopo", "Ran",
}

// SeedTestData resets the database and populates it with demo users, list
// entries and reactions.
//
// Behavior:
//  1. Clears reactions, the four list tables and users.
//  2. Creates 12 users with bcrypt-hashed passwords.
//  3. Gives every user 3 entries of each list kind.
//  4. Generates random reactions (~65% likes), never on the reactor's own entries.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := clearAll(db); err != nil {
		return err
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	const userCount = 12
	for i := 1; i <= userCount; i++ {
		user := User{
			ID:           fmt.Sprintf("user%d", i),
			Username:     fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Printf("Seeded %d users.", userCount)

	type seeded struct {
		id    uint64
		kind  reaction.Kind
		owner string
	}
	var entries []seeded

	for i := 1; i <= userCount; i++ {
		owner := fmt.Sprintf("user%d", i)
		for j := 0; j < 3; j++ {
			base := func() ListEntry {
				return ListEntry{
					UserID:  owner,
					MovieID: int64(r.Intn(900000) + 100),
					Title:   demoTitles[r.Intn(len(demoTitles))],
				}
			}

			fav := Favorite{ListEntry: base()}
			watched := Watched{ListEntry: base()}
			top := Top10{ListEntry: base(), Rank: j + 1}
			later := WatchLater{ListEntry: base()}
			for _, row := range []any{&fav, &watched, &top, &later} {
				if err := db.Create(row).Error; err != nil {
					return fmt.Errorf("failed to seed list entry: %w", err)
				}
			}
			entries = append(entries,
				seeded{fav.ID, reaction.KindFavorite, owner},
				seeded{watched.ID, reaction.KindWatched, owner},
				seeded{top.ID, reaction.KindTop10, owner},
				seeded{later.ID, reaction.KindWatchLater, owner},
			)
		}
	}
	log.Printf("Seeded %d list entries.", len(entries))

	counter := 0
	for i := 1; i <= userCount; i++ {
		actor := fmt.Sprintf("user%d", i)
		for j := 0; j < 15; j++ {
			e := entries[r.Intn(len(entries))]
			if e.owner == actor {
				continue
			}
			row := Reaction{
				UserID:       actor,
				EntryID:      e.id,
				EntryKind:    e.kind,
				EntryOwnerID: e.owner,
				IsLike:       r.Intn(100) < 65,
			}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("failed to seed reaction: %w", res.Error)
			}
			counter += int(res.RowsAffected)
		}
	}
	log.Printf("Seeded %d reactions.", counter)

	return nil
}

// SeedMinimalTestData inserts a small deterministic dataset:
//   - users a, b, c
//   - b owns favorite #42 and top10 #7; a owns watched #5
//   - no reactions
func SeedMinimalTestData(db *gorm.DB) error {
	if err := clearAll(db); err != nil {
		return err
	}

	users := []User{
		{ID: "a", Username: "a", Email: "a@test.com", PasswordHash: "x"},
		{ID: "b", Username: "b", Email: "b@test.com", PasswordHash: "x"},
		{ID: "c", Username: "c", Email: "c@test.com", PasswordHash: "x"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	rows := []any{
		&Favorite{ListEntry: ListEntry{ID: 42, UserID: "b", MovieID: 603, Title: "The Matrix"}},
		&Top10{ListEntry: ListEntry{ID: 7, UserID: "b", MovieID: 27205, Title: "Inception"}, Rank: 1},
		&Watched{ListEntry: ListEntry{ID: 5, UserID: "a", MovieID: 680, Title: "Pulp Fiction"}},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearAll(db *gorm.DB) error {
	for _, table := range []string{"reactions", "favorites", "watched", "top10", "watch_later", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"favorites", "watched", "top10", "watch_later"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('favorites', 'watched', 'top10', 'watch_later')")
	}
	return nil
}
