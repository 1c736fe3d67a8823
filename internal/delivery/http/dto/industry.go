package dto

type CreateIndustryRequest struct {
	IndustryName string   `json:"industry_name" validate:"required,max=100"`
	Skills       []string `json:"skills" validate:"required,min=1,max=500,dive,required,max=100"`
}

type UpdateIndustryRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,max=500,dive,required,max=100"`
}
