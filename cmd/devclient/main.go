// Command devclient is a development helper for the dealdocs gRPC API.
//
//	devclient token  -u u1 -r seller
//	devclient upload -u u1 -f passport.pdf -category kyc -type passport -title Passport
//	devclient status -u u1
//
// Tokens are signed locally with the server's secret key, so the tool only
// works against servers whose secret it knows.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/netx"
	"github.com/dmitrijs2005/dealdocs/internal/server/auth"
	"github.com/dmitrijs2005/dealdocs/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	gs "github.com/dmitrijs2005/dealdocs/internal/server/grpc"
)

type common struct {
	addr    string
	secret  string
	userID  string
	role    string
	ttl     time.Duration
	timeout time.Duration
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "a", "localhost:50051", "gRPC server address")
	fs.StringVar(&c.secret, "s", "secretKey", "JWT HMAC secret key")
	fs.StringVar(&c.userID, "u", "", "user id")
	fs.StringVar(&c.role, "r", string(models.RoleAgent), "role (admin|agent|buyer|seller|legal|notary)")
	fs.DurationVar(&c.ttl, "ttl", time.Hour, "token validity")
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "overall deadline")
}

func (c *common) token() (string, error) {
	if c.userID == "" {
		return "", fmt.Errorf("-u is required")
	}
	role, err := models.ParseRole(c.role)
	if err != nil {
		return "", err
	}
	return auth.GenerateToken(c.userID, role, []byte(c.secret), c.ttl)
}

func (c *common) dial() (*grpc.ClientConn, *gs.Client, error) {
	conn, err := grpc.NewClient(c.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return conn, gs.NewClient(conn), nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "token":
		err = runToken(os.Args[2:])
	case "upload":
		err = runUpload(os.Args[2:])
	case "status":
		err = runStatus(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "devclient:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: devclient token|upload|status [flags]")
}

func runToken(args []string) error {
	var c common
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := c.token()
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

func runUpload(args []string) error {
	var (
		c                   common
		path, title         string
		category, docType   string
		description, region string
	)
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	c.register(fs)
	fs.StringVar(&path, "f", "", "file to upload")
	fs.StringVar(&title, "title", "", "document title (defaults to the file name)")
	fs.StringVar(&category, "category", "", "catalog category")
	fs.StringVar(&docType, "type", "", "catalog subcategory")
	fs.StringVar(&description, "description", "", "optional description")
	fs.StringVar(&region, "region", "", "optional region metadata")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("-f is required")
	}
	if title == "" {
		title = filepath.Base(path)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tok, err := c.token()
	if err != nil {
		return err
	}

	conn, client, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	ctx = gs.WithAccessToken(ctx, tok)

	presigned, err := client.PresignUpload(ctx)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}

	if err := netx.UploadToPresignedURL(ctx, nil, presigned.URL, body, mime.TypeByExtension(filepath.Ext(path))); err != nil {
		return err
	}

	resp, err := client.CreateDocument(ctx, &gs.CreateDocumentRequest{
		Title:       title,
		Description: description,
		Category:    category,
		Type:        docType,
		Metadata:    models.Metadata{Region: region},
		FileRef:     presigned.Key,
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	fmt.Printf("%s %s %s/%s\n", resp.Document.ID, resp.Document.Status, resp.Document.Category, resp.Document.Type)
	return nil
}

func runStatus(args []string) error {
	var c common
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := c.token()
	if err != nil {
		return err
	}

	conn, client, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	report, err := client.StatusReport(gs.WithAccessToken(ctx, tok))
	if err != nil {
		return err
	}

	for _, cat := range report.Categories {
		fmt.Printf("%s: %s\n", cat.Category, cat.Status)
		for _, sub := range cat.Subcategories {
			mark := " "
			if sub.Uploaded {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, sub.Name)
		}
	}
	return nil
}
