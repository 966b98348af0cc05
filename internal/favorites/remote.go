package favorites

import "context"

// Remote 远端收藏服务。凭证由调用方逐次传入。
type Remote interface {
	List(ctx context.Context, cred Credential) ([]Record, error)
	Create(ctx context.Context, cred Credential, req CreateRequest) (Record, error)
	Delete(ctx context.Context, cred Credential, id ID) error
	Reorder(ctx context.Context, cred Credential, order []OrderItem) error
	// Use 记录一次使用，返回服务端的 times_used
	Use(ctx context.Context, cred Credential, id ID) (int, error)
}
