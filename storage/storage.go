package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"yearbook/config"
	"yearbook/db"
)

// StorageAPI is what the photo handlers need from a bucket: opaque object
// save/serve/delete. Bytes never flow through the access engine itself.
type StorageAPI interface {
	GetBucket() *Bucket
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	err := db.Instance.Find(&buckets).Error
	if err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "default",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err = bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))
	cachedStorage = []StorageAPI{}
	for _, bucket := range buckets {
		if bucket.StorageType == StorageTypeFile {
			cachedStorage = append(cachedStorage, NewDiskStorage(&bucket))
		} else if bucket.StorageType == StorageTypeS3 {
			cachedStorage = append(cachedStorage, NewS3Storage(&bucket))
		} else {
			panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
		}
	}
}

// GetDefaultStorage prefers a local disk bucket and returns nil when no
// bucket is configured at all.
func GetDefaultStorage() StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	for _, s := range cachedStorage {
		return s
	}
	return nil
}
