package dto

// CreateReviewReq 发表评论请求
type CreateReviewReq struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// UpdateReviewReq 修改评论请求
type UpdateReviewReq struct {
	Rating  *int    `json:"rating,omitempty"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
