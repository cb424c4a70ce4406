package userui

import (
	"confportal/internal/domain"
	"confportal/internal/service"
)

func applicationInput(f applyForm) service.ApplicationInput {
	return service.ApplicationInput{
		Role:       domain.ApplicationRole(f.Role),
		FullName:   f.FullName,
		Email:      f.Email,
		Contact:    f.Contact,
		Interests:  f.Interests,
		TalkTitle:  f.TalkTitle,
		TalkThesis: f.TalkThesis,
	}
}
