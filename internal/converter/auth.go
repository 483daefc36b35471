package converter

import (
	dto "tower_backend/internal/api/dto/auth"
	"tower_backend/internal/model"
)

func RegisterRequestToUserModel(req *dto.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	}
}

func ToLoginResponse(data *model.AuthData) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: data.AccessToken,
		Balance:     data.Balance,
	}
}
