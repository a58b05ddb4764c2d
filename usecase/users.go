package usecase

import (
	"context"
	"log"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// UsersService is the thin auth collaborator: it turns a registration or
// login into a visitor id plus a signed token. Everything else about users
// is read through the directory by the join and the bid stamp.
type UsersService struct {
	UsersRepo *repository.UsersRepo
}

func (svc *UsersService) Register(ctx context.Context, in *dto.RegisterInput) (*dto.AuthResponse, error) {
	hash, err := services.HashPassword(in.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		return nil, ErrStorage
	}

	user := &model.User{
		Username:  utils.SanitizeTrim(in.Username),
		FirstName: utils.SanitizeTrim(in.FirstName),
		LastName:  utils.SanitizeTrim(in.LastName),
		Email:     utils.SanitizeTrim(in.Email),
		Password:  hash,
	}

	id, err := svc.UsersRepo.Insert(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrTaken
	}
	if err != nil {
		log.Printf("user insert failed: %v", err)
		return nil, ErrStorage
	}

	token, err := services.GenerateJWT(id.Hex())
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return nil, ErrStorage
	}

	return &dto.AuthResponse{
		UserID:   id.Hex(),
		Username: user.Username,
		Avatar:   model.Avatar(user.Email),
		Token:    token,
	}, nil
}

func (svc *UsersService) Login(ctx context.Context, in *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := svc.UsersRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, ErrBadCredentials
	}

	if !services.ComparePasswords(user.Password, in.Password) {
		return nil, ErrBadCredentials
	}

	token, err := services.GenerateJWT(user.ID.Hex())
	if err != nil {
		log.Printf("token generation failed: %v", err)
		return nil, ErrStorage
	}

	return &dto.AuthResponse{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Avatar:   model.Avatar(user.Email),
		Token:    token,
	}, nil
}
