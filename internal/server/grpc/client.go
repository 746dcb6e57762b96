package grpc

import (
	"context"

	"github.com/dmitrijs2005/dealdocs/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client is a typed client for dealdocs.DocumentService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithAccessToken attaches the access token to outgoing calls made with ctx.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethodName, &PingRequest{}, opts)
}

func (c *Client) CreateDocument(ctx context.Context, in *CreateDocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, CreateDocumentFullMethodName, in, opts)
}

func (c *Client) ListDocuments(ctx context.Context, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	return invoke[ListDocumentsResponse](ctx, c.cc, ListDocumentsFullMethodName, &ListDocumentsRequest{}, opts)
}

func (c *Client) GetDocument(ctx context.Context, in *GetDocumentRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, GetDocumentFullMethodName, in, opts)
}

func (c *Client) TransitionStatus(ctx context.Context, in *TransitionStatusRequest, opts ...grpc.CallOption) (*DocumentResponse, error) {
	return invoke[DocumentResponse](ctx, c.cc, TransitionStatusFullMethodName, in, opts)
}

func (c *Client) ShareDocument(ctx context.Context, in *ShareDocumentRequest, opts ...grpc.CallOption) (*ShareDocumentResponse, error) {
	return invoke[ShareDocumentResponse](ctx, c.cc, ShareDocumentFullMethodName, in, opts)
}

func (c *Client) PresignUpload(ctx context.Context, opts ...grpc.CallOption) (*PresignUploadResponse, error) {
	return invoke[PresignUploadResponse](ctx, c.cc, PresignUploadFullMethodName, &PresignUploadRequest{}, opts)
}

func (c *Client) DownloadURL(ctx context.Context, in *DownloadURLRequest, opts ...grpc.CallOption) (*DownloadURLResponse, error) {
	return invoke[DownloadURLResponse](ctx, c.cc, DownloadURLFullMethodName, in, opts)
}

func (c *Client) ListCategories(ctx context.Context, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, ListCategoriesFullMethodName, &ListCategoriesRequest{}, opts)
}

func (c *Client) ListSubcategories(ctx context.Context, in *ListSubcategoriesRequest, opts ...grpc.CallOption) (*ListSubcategoriesResponse, error) {
	return invoke[ListSubcategoriesResponse](ctx, c.cc, ListSubcategoriesFullMethodName, in, opts)
}

func (c *Client) StatusReport(ctx context.Context, opts ...grpc.CallOption) (*StatusReportResponse, error) {
	return invoke[StatusReportResponse](ctx, c.cc, StatusReportFullMethodName, &StatusReportRequest{}, opts)
}
