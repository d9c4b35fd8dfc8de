package pkg

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobStore uploads export files to an Azure Blob container and hands back the
// canonical addressable URL.
type BlobStore struct {
	client     *azblob.Client
	container  string
	accountURL string
}

// NewBlobStoreFromConnectionString builds a store from a storage account
// connection string. accountURL is used only to compose the returned address.
func NewBlobStoreFromConnectionString(connectionString, container, accountURL string) (*BlobStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build blob client: %w", err)
	}
	return &BlobStore{client: client, container: container, accountURL: strings.TrimSuffix(accountURL, "/")}, nil
}

// NewBlobStore builds a store against the account URL using the ambient Azure
// credential chain (managed identity, env, CLI).
func NewBlobStore(accountURL, container string) (*BlobStore, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve azure credential: %w", err)
	}
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build blob client: %w", err)
	}
	return &BlobStore{client: client, container: container, accountURL: strings.TrimSuffix(accountURL, "/")}, nil
}

// Upload streams body into the container under blobName and returns the blob URL.
func (slf *BlobStore) Upload(ctx context.Context, blobName string, body io.Reader) (string, error) {
	if _, err := slf.client.UploadStream(ctx, slf.container, blobName, body, nil); err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", blobName, err)
	}
	return fmt.Sprintf("%s/%s/%s", slf.accountURL, slf.container, blobName), nil
}
