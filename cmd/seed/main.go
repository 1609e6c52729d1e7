// Package main provides a tool to seed the database with demo data.
//
// It creates a handful of demo users, published posts, and a writing
// challenge so the leaderboard and search features have something to
// work with during development. Seeded records carry a flag so a later
// run with --clean can remove them.
//
// Usage:
//
//	DATA_PATH=~/CampusConnect/data go run ./cmd/seed
//	DATA_PATH=~/CampusConnect/data go run ./cmd/seed --clean
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/id"
	"github.com/campusconnect/campusconnect-server/internal/slug"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

var clean = flag.Bool("clean", false, "Remove previously seeded records instead of creating new ones")

// demoPassword is shared by all seeded accounts. Development only.
const demoPassword = "campus-demo-pass"

type demoUser struct {
	name  string
	email string
	bio   string
	posts []demoPost
}

type demoPost struct {
	title   string
	content string
	mood    string
	draft   bool
}

var demoUsers = []demoUser{
	{
		name:  "Asha Rao",
		email: "asha@campus.demo",
		bio:   "Third-year CS. Writes about study habits and campus coffee.",
		posts: []demoPost{
			{title: "Surviving finals week", content: "Sleep, snacks, and spaced repetition. Here is the schedule that got me through.", mood: "determined"},
			{title: "Library quiet floors, ranked", content: "Fourth floor wins, no contest. Second floor is a social trap.", mood: "playful"},
			{title: "Why I stopped pulling all-nighters", content: "The math never worked out. One bad night costs two good days.", mood: "reflective"},
		},
	},
	{
		name:  "Ben Ito",
		email: "ben@campus.demo",
		bio:   "Econ major, intramural volleyball, occasional poet.",
		posts: []demoPost{
			{title: "Volleyball tryouts recap", content: "We lost every scrimmage and it was still the best week of the semester.", mood: "upbeat"},
			{title: "Half-finished thoughts on dorm food", content: "Draft. Do not publish until I have something nice to say.", draft: true},
		},
	},
	{
		name:  "Carla Mendes",
		email: "carla@campus.demo",
		bio:   "Transfer student figuring it out one post at a time.",
		posts: []demoPost{
			{title: "A transfer student's first month", content: "Nobody tells you how hard the small logistics are. Here is what helped.", mood: "honest"},
		},
	},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/CampusConnect/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *clean {
		removeSeeded(ctx, s)
		return
	}

	seed(ctx, s)
}

func mustID(prefix string) string {
	generated, err := id.Generate(prefix)
	if err != nil {
		log.Fatalf("Failed to generate ID: %v", err)
	}
	return generated
}

func seed(ctx context.Context, s *store.Store) {
	passwordHash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	userIDs := make([]string, 0, len(demoUsers))
	postsCreated := 0

	for _, du := range demoUsers {
		if existing, err := s.GetUserByEmail(ctx, du.email); err == nil {
			fmt.Printf("User %s already exists, skipping\n", du.email)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		user := &domain.User{
			Name:             du.name,
			Email:            strings.ToLower(du.email),
			PasswordHash:     passwordHash,
			Bio:              du.bio,
			BookmarksEnabled: true,
			LastLoginAt:      time.Now().UTC(),
			Seeded:           true,
		}
		user.ID = mustID("usr")
		user.InitTimestamps()

		if err := s.Users.Create(ctx, user.ID, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.email, err)
		}
		fmt.Printf("Created user %s (%s)\n", du.name, user.ID)
		userIDs = append(userIDs, user.ID)

		for _, dp := range du.posts {
			post := &domain.Post{
				Title:    dp.title,
				Slug:     slug.Make(dp.title),
				Content:  dp.content,
				AuthorID: user.ID,
				Mood:     dp.mood,
				Draft:    dp.draft,
				Seeded:   true,
			}
			post.ID = mustID("post")
			post.InitTimestamps()

			if err := s.CreatePost(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", dp.title, err)
			}
			postsCreated++
		}
	}

	// Everyone follows the first demo user so the activity feed and
	// follow counts have data.
	if len(userIDs) > 1 {
		target, err := s.Users.Get(ctx, userIDs[0])
		if err != nil {
			log.Fatalf("Failed to load follow target: %v", err)
		}
		for _, followerID := range userIDs[1:] {
			follower, err := s.Users.Get(ctx, followerID)
			if err != nil {
				log.Fatalf("Failed to load follower: %v", err)
			}
			if follower.Follow(target.ID) {
				target.AddFollower(follower.ID)
				follower.Touch()
				if err := s.Users.Update(ctx, follower.ID, follower); err != nil {
					log.Fatalf("Failed to update follower: %v", err)
				}
			}
		}
		target.Touch()
		if err := s.Users.Update(ctx, target.ID, target); err != nil {
			log.Fatalf("Failed to update follow target: %v", err)
		}
	}

	// One open writing challenge with every demo user joined.
	challenge := &domain.Challenge{
		Title:        "30 posts in 30 days",
		Description:  "Publish one post a day for a month. Drafts count as cowardice.",
		AuthorID:     userIDs[0],
		Participants: userIDs,
	}
	challenge.ID = mustID("chal")
	challenge.InitTimestamps()

	if err := s.Challenges.Create(ctx, challenge.ID, challenge); err != nil {
		log.Fatalf("Failed to create challenge: %v", err)
	}

	fmt.Printf("\nSeeded %d users, %d posts, 1 challenge\n", len(userIDs), postsCreated)
	fmt.Printf("All demo accounts use password %q\n", demoPassword)
}

func removeSeeded(ctx context.Context, s *store.Store) {
	removedPosts := 0
	for post, err := range s.Posts.List(ctx) {
		if err != nil {
			log.Fatalf("Failed to list posts: %v", err)
		}
		if !post.Seeded {
			continue
		}
		if err := s.DeletePost(ctx, post.ID); err != nil {
			log.Fatalf("Failed to delete post %s: %v", post.ID, err)
		}
		removedPosts++
	}

	removedUsers := 0
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		if !user.Seeded {
			continue
		}
		if err := s.Users.Delete(ctx, user.ID); err != nil {
			log.Fatalf("Failed to delete user %s: %v", user.ID, err)
		}
		removedUsers++
	}

	fmt.Printf("Removed %d seeded posts and %d seeded users\n", removedPosts, removedUsers)
}
