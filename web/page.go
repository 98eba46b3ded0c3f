package web

import (
	"sick-fits/dto"
)

type pagination struct {
	Page  int
	Pages int
	Count int64
	Prev  int
	Next  int
}

func newPagination(page int, perPage int, count int64) pagination {
	pages := int((count + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pagination{Page: page, Pages: pages, Count: count, Prev: page - 1, Next: page + 1}
}

// page is the data every template renders from. Components read only the
// fields they own.
type page struct {
	Title                string
	Me                   *dto.UserResponse
	CanManagePermissions bool
	Error                string

	Next        string
	SigninError string
	SigninEmail string
	SignupError string
	SignupEmail string
	SignupName  string
	ResetError  string
	ResetSent   bool

	Items      []*dto.ItemResponse
	Item       *dto.ItemResponse
	Pagination pagination
	Form       dto.CreateItemInput

	ResetToken string

	Users          []*dto.UserResponse
	AllPermissions []string
	Updated        string
}
