package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectsService orchestrates sanitize -> validate -> persist for projects
// and owns the ownership gate on mutation. Repos are injected once at
// startup; FeedCache may be nil when redis is not configured.
type ProjectsService struct {
	ProjectsRepo *repository.ProjectsRepo
	FollowsRepo  *repository.FollowsRepo
	UsersRepo    *repository.UsersRepo
	FeedCache    *services.FeedCache
}

// cleanProject coerces, trims and strips markup from the submitted fields.
// What is stored is exactly what will be re-rendered, so no markup may
// survive this step.
func cleanProject(in *dto.ProjectInput) *model.Project {
	return &model.Project{
		Title:                 utils.SanitizeTrim(normalizeString(in.Title)),
		Location:              utils.SanitizeTrim(normalizeString(in.Location)),
		BidSubmissionDeadline: utils.Sanitize(normalizeString(in.BidSubmissionDeadline)),
		Description:           utils.SanitizeTrim(normalizeString(in.Description)),
		Email:                 utils.SanitizeTrim(normalizeString(in.Email)),
		Phone:                 utils.SanitizeTrim(normalizeString(in.Phone)),
	}
}

// gateOwnership resolves the project and confirms the requester is its
// author. A missing project and a foreign one answer identically so
// existence is not leaked; anything else the store reports is a storage
// failure, not a denial.
func (svc *ProjectsService) gateOwnership(ctx context.Context, projectID string, requesterID primitive.ObjectID) error {
	current, err := svc.ProjectsRepo.FindSingleByID(ctx, projectID, requesterID)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return ErrAccessDenied
	}
	if err != nil {
		log.Printf("ownership lookup failed: %v", err)
		return ErrStorage
	}
	if !current.IsVisitorOwner {
		return ErrAccessDenied
	}
	return nil
}

// Create validates the submission and inserts it stamped with the author.
// On validation failure nothing is written and every message is returned.
func (svc *ProjectsService) Create(ctx context.Context, in *dto.ProjectInput, authorID primitive.ObjectID) (primitive.ObjectID, error) {
	project := cleanProject(in)
	if errs := ValidateProject(project); len(errs) > 0 {
		return primitive.NilObjectID, &ValidationError{Messages: errs}
	}
	project.Author = authorID

	id, err := svc.ProjectsRepo.Create(ctx, project)
	if err != nil {
		log.Printf("project create failed: %v", err)
		return primitive.NilObjectID, ErrStorage
	}

	svc.expireFeeds(ctx)
	return id, nil
}

// Update re-runs sanitize+validate and sets the editable fields in place,
// leaving bids and createdDate untouched. Only the author may update; a
// missing project answers the same way as a foreign one. Validation failure
// is the soft UpdateFailure outcome, not an error.
func (svc *ProjectsService) Update(ctx context.Context, projectID string, in *dto.ProjectInput, requesterID primitive.ObjectID) (UpdateStatus, []string, error) {
	if err := svc.gateOwnership(ctx, projectID, requesterID); err != nil {
		return UpdateFailure, nil, err
	}

	project := cleanProject(in)
	if errs := ValidateProject(project); len(errs) > 0 {
		return UpdateFailure, errs, nil
	}

	oid, _ := primitive.ObjectIDFromHex(projectID)
	if err := svc.ProjectsRepo.Update(ctx, oid, project); err != nil {
		log.Printf("project update failed: %v", err)
		return UpdateFailure, nil, ErrStorage
	}

	svc.expireFeeds(ctx)
	return UpdateSuccess, nil, nil
}

// Delete removes the whole project, bids included, behind the same
// ownership gate as Update.
func (svc *ProjectsService) Delete(ctx context.Context, projectID string, requesterID primitive.ObjectID) error {
	if err := svc.gateOwnership(ctx, projectID, requesterID); err != nil {
		return err
	}

	oid, _ := primitive.ObjectIDFromHex(projectID)
	if err := svc.ProjectsRepo.Delete(ctx, oid); err != nil {
		log.Printf("project delete failed: %v", err)
		return ErrStorage
	}

	svc.expireFeeds(ctx)
	return nil
}

// FindSingleByID resolves one project view tagged for the visitor.
func (svc *ProjectsService) FindSingleByID(ctx context.Context, projectID string, visitorID primitive.ObjectID) (*model.ProjectView, error) {
	view, err := svc.ProjectsRepo.FindSingleByID(ctx, projectID, visitorID)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("project lookup failed: %v", err)
		return nil, ErrStorage
	}
	return view, nil
}

// FindByAuthorID lists an author's projects, newest first.
func (svc *ProjectsService) FindByAuthorID(ctx context.Context, authorID primitive.ObjectID) ([]model.ProjectView, error) {
	views, err := svc.ProjectsRepo.FindByAuthorID(ctx, authorID)
	if err != nil {
		log.Printf("author projects lookup failed: %v", err)
		return nil, ErrStorage
	}
	return views, nil
}

// CountByAuthor reports how many projects an author has posted.
func (svc *ProjectsService) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int, error) {
	count, err := svc.ProjectsRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		log.Printf("project count failed: %v", err)
		return 0, ErrStorage
	}
	return count, nil
}

// Search runs a ranked full-text query. A term that is not a string, or is
// blank after trimming, is rejected before touching the store.
func (svc *ProjectsService) Search(ctx context.Context, term any, visitorID primitive.ObjectID) ([]model.ProjectView, error) {
	query := strings.TrimSpace(normalizeString(term))
	if query == "" {
		return nil, ErrInvalidInput
	}

	views, err := svc.ProjectsRepo.Search(ctx, query, visitorID)
	if err != nil {
		log.Printf("project search failed: %v", err)
		return nil, ErrStorage
	}
	return views, nil
}

// FeedForVisitor assembles the personalized feed: projects by everyone the
// visitor follows, newest first. Following nobody yields an empty feed.
func (svc *ProjectsService) FeedForVisitor(ctx context.Context, visitorID primitive.ObjectID) ([]model.ProjectView, error) {
	cacheKey := "visitor:" + visitorID.Hex()
	if svc.FeedCache != nil {
		if views, ok := svc.FeedCache.Get(ctx, cacheKey); ok {
			return views, nil
		}
	}

	followed, err := svc.FollowsRepo.FollowedIDs(ctx, visitorID)
	if err != nil {
		log.Printf("follow lookup failed: %v", err)
		return nil, ErrStorage
	}

	views, err := svc.ProjectsRepo.FeedForAuthors(ctx, followed, visitorID)
	if err != nil {
		log.Printf("feed query failed: %v", err)
		return nil, ErrStorage
	}

	if svc.FeedCache != nil {
		svc.FeedCache.Set(ctx, cacheKey, views)
	}
	return views, nil
}

// GlobalFeed is the unauthenticated feed: every known user's projects,
// newest first, with no follow filtering and no ownership for anyone.
func (svc *ProjectsService) GlobalFeed(ctx context.Context) ([]model.ProjectView, error) {
	if svc.FeedCache != nil {
		if views, ok := svc.FeedCache.Get(ctx, services.PublicFeedKey); ok {
			return views, nil
		}
	}

	userIDs, err := svc.UsersRepo.AllIDs(ctx)
	if err != nil {
		log.Printf("user id listing failed: %v", err)
		return nil, ErrStorage
	}

	views, err := svc.ProjectsRepo.FeedForAuthors(ctx, userIDs, primitive.NilObjectID)
	if err != nil {
		log.Printf("global feed query failed: %v", err)
		return nil, ErrStorage
	}

	if svc.FeedCache != nil {
		svc.FeedCache.Set(ctx, services.PublicFeedKey, views)
	}
	return views, nil
}

func (svc *ProjectsService) expireFeeds(ctx context.Context) {
	if svc.FeedCache != nil {
		svc.FeedCache.Invalidate(ctx)
	}
}
