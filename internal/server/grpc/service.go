package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "dealdocs.DocumentService"

const (
	PingFullMethodName              = "/" + ServiceName + "/Ping"
	CreateDocumentFullMethodName    = "/" + ServiceName + "/CreateDocument"
	ListDocumentsFullMethodName     = "/" + ServiceName + "/ListDocuments"
	GetDocumentFullMethodName       = "/" + ServiceName + "/GetDocument"
	TransitionStatusFullMethodName  = "/" + ServiceName + "/TransitionStatus"
	ShareDocumentFullMethodName     = "/" + ServiceName + "/ShareDocument"
	PresignUploadFullMethodName     = "/" + ServiceName + "/PresignUpload"
	DownloadURLFullMethodName       = "/" + ServiceName + "/DownloadURL"
	ListCategoriesFullMethodName    = "/" + ServiceName + "/ListCategories"
	ListSubcategoriesFullMethodName = "/" + ServiceName + "/ListSubcategories"
	StatusReportFullMethodName      = "/" + ServiceName + "/StatusReport"
)

// DocumentServiceServer is the server API of dealdocs.DocumentService.
type DocumentServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateDocument(context.Context, *CreateDocumentRequest) (*DocumentResponse, error)
	ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error)
	GetDocument(context.Context, *GetDocumentRequest) (*DocumentResponse, error)
	TransitionStatus(context.Context, *TransitionStatusRequest) (*DocumentResponse, error)
	ShareDocument(context.Context, *ShareDocumentRequest) (*ShareDocumentResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
	DownloadURL(context.Context, *DownloadURLRequest) (*DownloadURLResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	ListSubcategories(context.Context, *ListSubcategoriesRequest) (*ListSubcategoriesResponse, error)
	StatusReport(context.Context, *StatusReportRequest) (*StatusReportResponse, error)
}

func RegisterDocumentServiceServer(s grpc.ServiceRegistrar, srv DocumentServiceServer) {
	s.RegisterService(&DocumentServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler, routing
// the call through the server's interceptor chain when one is installed.
func unaryHandler[Req, Resp any](fullMethod string, call func(DocumentServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DocumentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DocumentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var DocumentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(PingFullMethodName, DocumentServiceServer.Ping)},
		{MethodName: "CreateDocument", Handler: unaryHandler(CreateDocumentFullMethodName, DocumentServiceServer.CreateDocument)},
		{MethodName: "ListDocuments", Handler: unaryHandler(ListDocumentsFullMethodName, DocumentServiceServer.ListDocuments)},
		{MethodName: "GetDocument", Handler: unaryHandler(GetDocumentFullMethodName, DocumentServiceServer.GetDocument)},
		{MethodName: "TransitionStatus", Handler: unaryHandler(TransitionStatusFullMethodName, DocumentServiceServer.TransitionStatus)},
		{MethodName: "ShareDocument", Handler: unaryHandler(ShareDocumentFullMethodName, DocumentServiceServer.ShareDocument)},
		{MethodName: "PresignUpload", Handler: unaryHandler(PresignUploadFullMethodName, DocumentServiceServer.PresignUpload)},
		{MethodName: "DownloadURL", Handler: unaryHandler(DownloadURLFullMethodName, DocumentServiceServer.DownloadURL)},
		{MethodName: "ListCategories", Handler: unaryHandler(ListCategoriesFullMethodName, DocumentServiceServer.ListCategories)},
		{MethodName: "ListSubcategories", Handler: unaryHandler(ListSubcategoriesFullMethodName, DocumentServiceServer.ListSubcategories)},
		{MethodName: "StatusReport", Handler: unaryHandler(StatusReportFullMethodName, DocumentServiceServer.StatusReport)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dealdocs/document_service",
}
