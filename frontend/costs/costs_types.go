package costs

import "printshop/infrastructure/pricing"

type PageData struct {
	Config pricing.CostConfig
	Job    pricing.Job
	Result *pricing.Result
	Error  string
	Status string
}
