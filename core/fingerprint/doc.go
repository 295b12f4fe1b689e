// Package fingerprint computes content fingerprints for local files.
//
// A fingerprint is the hex MD5 digest of a file plus the number of bytes
// read. Object stores report the MD5 of non-multipart uploads as the ETag,
// so the digest can be compared against a listing without downloading.
//
// # Usage
//
//	fp, err := fingerprint.File(fs, "/srv/site/index.html")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(fp.Hash, fp.Size)
package fingerprint
