package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Skip("mongodb not available:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skip("mongodb not reachable:", err)
	}

	db := client.Database("biddingapp_test")
	if err := db.Drop(context.Background()); err != nil {
		t.Fatal("drop test database failed", err)
	}

	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return db
}

func insertTestUser(t *testing.T, usersRepo *UsersRepo, username string) primitive.ObjectID {
	t.Helper()

	id, err := usersRepo.Insert(context.Background(), &model.User{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		Password:  "unused",
	})
	if err != nil {
		t.Fatal("insert user failed", err)
	}
	return id
}

func TestProjectMongoOperations(t *testing.T) {
	db := newTestDB(t)

	if err := SetupIndexes(db); err != nil {
		t.Fatal("index setup failed", err)
	}

	projectsRepo := ProjectsRepo{MongoCollection: db.Collection("projects")}
	usersRepo := UsersRepo{MongoCollection: db.Collection("users")}

	owner := insertTestUser(t, &usersRepo, "projowner")
	visitor := insertTestUser(t, &usersRepo, "projvisitor")

	var firstID, secondID primitive.ObjectID

	t.Run("Create", func(t *testing.T) {
		id, err := projectsRepo.Create(context.Background(), &model.Project{
			Title:                 "Replace the garage roof",
			Location:              "Duluth",
			BidSubmissionDeadline: "end of the month",
			Description:           "Old shingles, needs full tear-off.",
			Email:                 "projowner@example.com",
			Phone:                 "555-0100",
			Author:                owner,
		})
		if err != nil {
			t.Fatal("create project failed", err)
		}
		firstID = id

		time.Sleep(5 * time.Millisecond)

		id, err = projectsRepo.Create(context.Background(), &model.Project{
			Title:                 "Paint the fence",
			Location:              "Duluth",
			BidSubmissionDeadline: "next week",
			Description:           "White picket fence, two coats.",
			Email:                 "projowner@example.com",
			Phone:                 "555-0100",
			Author:                owner,
		})
		if err != nil {
			t.Fatal("create project failed", err)
		}
		secondID = id
	})

	t.Run("FindSingleByIDAsOwner", func(t *testing.T) {
		view, err := projectsRepo.FindSingleByID(context.Background(), firstID.Hex(), owner)
		if err != nil {
			t.Fatal("find project failed", err)
		}
		if !view.IsVisitorOwner {
			t.Error("owner not flagged as owner")
		}
		if view.Author.Username != "projowner" {
			t.Errorf("author join missing, got %+v", view.Author)
		}
		if view.Author.Avatar == "" || view.Author.UserCreationDate == "" {
			t.Errorf("derived author fields missing: %+v", view.Author)
		}
	})

	t.Run("FindSingleByIDAsVisitor", func(t *testing.T) {
		view, err := projectsRepo.FindSingleByID(context.Background(), firstID.Hex(), visitor)
		if err != nil {
			t.Fatal("find project failed", err)
		}
		if view.IsVisitorOwner {
			t.Error("visitor flagged as owner")
		}
	})

	t.Run("FindSingleByIDMalformed", func(t *testing.T) {
		_, err := projectsRepo.FindSingleByID(context.Background(), "not-hex", visitor)
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("FindSingleByIDMissing", func(t *testing.T) {
		_, err := projectsRepo.FindSingleByID(context.Background(), primitive.NewObjectID().Hex(), visitor)
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("FindByAuthorIDNewestFirst", func(t *testing.T) {
		views, err := projectsRepo.FindByAuthorID(context.Background(), owner)
		if err != nil {
			t.Fatal("find by author failed", err)
		}
		if len(views) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(views))
		}
		if views[0].ID != secondID.Hex() || views[1].ID != firstID.Hex() {
			t.Errorf("projects out of order: %s, %s", views[0].ID, views[1].ID)
		}
	})

	t.Run("CountByAuthor", func(t *testing.T) {
		count, err := projectsRepo.CountByAuthor(context.Background(), owner)
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != 2 {
			t.Errorf("expected 2, got %d", count)
		}

		count, err = projectsRepo.CountByAuthor(context.Background(), visitor)
		if err != nil {
			t.Fatal("count failed", err)
		}
		if count != 0 {
			t.Errorf("expected 0, got %d", count)
		}
	})

	t.Run("Search", func(t *testing.T) {
		views, err := projectsRepo.Search(context.Background(), "roof", visitor)
		if err != nil {
			t.Fatal("search failed", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 hit, got %d", len(views))
		}
		if views[0].ID != firstID.Hex() {
			t.Errorf("wrong hit: %s", views[0].ID)
		}
	})

	t.Run("FeedForAuthors", func(t *testing.T) {
		views, err := projectsRepo.FeedForAuthors(context.Background(),
			[]primitive.ObjectID{owner}, visitor)
		if err != nil {
			t.Fatal("feed failed", err)
		}
		if len(views) != 2 {
			t.Fatalf("expected 2 projects, got %d", len(views))
		}
		if views[0].IsVisitorOwner || views[1].IsVisitorOwner {
			t.Error("visitor flagged as owner in feed")
		}
	})

	t.Run("FeedForAuthorsEmptyList", func(t *testing.T) {
		views, err := projectsRepo.FeedForAuthors(context.Background(), nil, visitor)
		if err != nil {
			t.Fatal("feed failed", err)
		}
		if len(views) != 0 {
			t.Errorf("expected empty feed, got %d", len(views))
		}
	})

	t.Run("UpdateKeepsCreatedDate", func(t *testing.T) {
		before, err := projectsRepo.FindSingleByID(context.Background(), firstID.Hex(), owner)
		if err != nil {
			t.Fatal("find project failed", err)
		}

		err = projectsRepo.Update(context.Background(), firstID, &model.Project{
			Title:                 "Replace the garage roof and gutters",
			Location:              "Duluth",
			BidSubmissionDeadline: "end of the month",
			Description:           "Tear-off plus new gutters.",
			Email:                 "projowner@example.com",
			Phone:                 "555-0100",
		})
		if err != nil {
			t.Fatal("update failed", err)
		}

		after, err := projectsRepo.FindSingleByID(context.Background(), firstID.Hex(), owner)
		if err != nil {
			t.Fatal("find project failed", err)
		}
		if after.Title != "Replace the garage roof and gutters" {
			t.Errorf("title not updated: %q", after.Title)
		}
		if !after.CreatedDate.Equal(before.CreatedDate) {
			t.Error("createdDate changed on update")
		}
		if after.UpdatedDate.IsZero() {
			t.Error("updatedDate not stamped")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := projectsRepo.Delete(context.Background(), secondID); err != nil {
			t.Fatal("delete failed", err)
		}
		_, err := projectsRepo.FindSingleByID(context.Background(), secondID.Hex(), owner)
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})
}

func TestFollowMongoOperations(t *testing.T) {
	db := newTestDB(t)

	followsRepo := FollowsRepo{MongoCollection: db.Collection("follows")}

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	t.Run("AddIsIdempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := followsRepo.Add(context.Background(), alice, bob); err != nil {
				t.Fatal("add follow failed", err)
			}
		}
		if err := followsRepo.Add(context.Background(), alice, carol); err != nil {
			t.Fatal("add follow failed", err)
		}

		ids, err := followsRepo.FollowedIDs(context.Background(), alice)
		if err != nil {
			t.Fatal("followed ids failed", err)
		}
		if len(ids) != 2 {
			t.Errorf("expected 2 followed ids, got %d", len(ids))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := followsRepo.Remove(context.Background(), alice, bob); err != nil {
			t.Fatal("remove follow failed", err)
		}

		ids, err := followsRepo.FollowedIDs(context.Background(), alice)
		if err != nil {
			t.Fatal("followed ids failed", err)
		}
		if len(ids) != 1 || ids[0] != carol {
			t.Errorf("unexpected followed ids: %v", ids)
		}
	})

	t.Run("FollowedIDsEmpty", func(t *testing.T) {
		ids, err := followsRepo.FollowedIDs(context.Background(), bob)
		if err != nil {
			t.Fatal("followed ids failed", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no followed ids, got %v", ids)
		}
	})
}
