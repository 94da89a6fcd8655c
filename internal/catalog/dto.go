package catalog

type ProductDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
}
