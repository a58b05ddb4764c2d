package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newHandlerTestDB(t *testing.T) *mongo.Database {
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

	db := client.Database("biddingapp_handler_test")
	if err := db.Drop(context.Background()); err != nil {
		t.Fatal("drop test database failed", err)
	}

	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})
	return db
}

// The search route sits behind the optional-auth middleware so results carry
// ownership tags when the visitor presents a token.
func TestSearchTagsOwnershipForLoggedInVisitor(t *testing.T) {
	db := newHandlerTestDB(t)

	os.Setenv("GO_ENV", "test")
	utils.InitJWT()

	if err := repository.SetupIndexes(db); err != nil {
		t.Fatal("index setup failed", err)
	}

	usersRepo := &repository.UsersRepo{MongoCollection: db.Collection("users")}
	svc := &usecase.ProjectsService{
		ProjectsRepo: &repository.ProjectsRepo{MongoCollection: db.Collection("projects")},
		FollowsRepo:  &repository.FollowsRepo{MongoCollection: db.Collection("follows")},
		UsersRepo:    usersRepo,
	}

	owner, err := usersRepo.Insert(context.Background(), &model.User{
		Username: "searchowner", Email: "searchowner@example.com", Password: "unused",
	})
	if err != nil {
		t.Fatal("insert user failed", err)
	}

	if _, err := svc.Create(context.Background(), &dto.ProjectInput{
		Title:                 "Replace the garage roof",
		Location:              "Duluth",
		BidSubmissionDeadline: "end of the month",
		Description:           "Old shingles, needs full tear-off.",
		Email:                 "searchowner@example.com",
		Phone:                 "555-0100",
	}, owner); err != nil {
		t.Fatal("create project failed", err)
	}

	token, err := services.GenerateJWT(owner.Hex())
	if err != nil {
		t.Fatal("token generation failed", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	view := router.Group("/api")
	view.Use(middleware.OptionalAuthMiddleware())
	view.POST("/search", func(c *gin.Context) {
		SearchProjectsHandler(c, svc)
	})

	search := func(t *testing.T, authorize bool) []model.ProjectView {
		t.Helper()

		body, _ := json.Marshal(gin.H{"searchTerm": "roof"})
		req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if authorize {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Data []model.ProjectView `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal("decode response failed", err)
		}
		return resp.Data
	}

	t.Run("OwnerWithToken", func(t *testing.T) {
		views := search(t, true)
		if len(views) != 1 {
			t.Fatalf("expected 1 hit, got %d", len(views))
		}
		if !views[0].IsVisitorOwner {
			t.Error("owner's hit not tagged as owned")
		}
	})

	t.Run("Anonymous", func(t *testing.T) {
		views := search(t, false)
		if len(views) != 1 {
			t.Fatalf("expected 1 hit, got %d", len(views))
		}
		if views[0].IsVisitorOwner {
			t.Error("anonymous visitor tagged as owner")
		}
	})
}
