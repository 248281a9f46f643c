/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pex

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	// AnonCredsMetadataKey marks a W3C record that was issued as an AnonCreds credential.
	AnonCredsMetadataKey = "_w3c/anonCredsMetadata"

	SyntheticLinkSecretID   = "synthetic"
	SyntheticMethodName     = "w3c"
	SyntheticSchemaIssuerID = "unknown"
	SyntheticSchemaVersion  = "1.0"
)

// DescriptorMetadata maps an input descriptor id to the records that can satisfy it. A
// record appears at most once per descriptor.
type DescriptorMetadata map[string][]*RecordWithMetadata

// GetDescriptorMetadata builds descriptor metadata for a presentation exchange query result.
func GetDescriptorMetadata(cfr *CredentialsForRequest) (DescriptorMetadata, error) {
	md := DescriptorMetadata{}
	if err := md.Accumulate(cfr); err != nil {
		return nil, err
	}

	return md, nil
}

// Accumulate adds the records of cfr that are not yet listed under their descriptor. Every
// credential of cfr is resolved before any of them is added, so r is left untouched when an
// error is returned.
func (r DescriptorMetadata) Accumulate(cfr *CredentialsForRequest) error {
	if cfr == nil {
		return nil
	}

	type pending struct {
		descriptorID string
		records      []*RecordWithMetadata
	}

	var resolved []pending

	for i, req := range cfr.Requirements {
		if req == nil {
			return errors.Errorf("submission requirement %d is empty", i)
		}

		for j, entry := range req.SubmissionEntry {
			if entry == nil {
				return errors.Errorf("submission requirement %d: entry %d is empty", i, j)
			}

			records := make([]*RecordWithMetadata, 0, len(entry.VerifiableCredentials))
			for _, vc := range entry.VerifiableCredentials {
				rec, err := resolveRecord(vc)
				if err != nil {
					return errors.Wrapf(err, "input descriptor %s", entry.InputDescriptorID)
				}

				records = append(records, rec)
			}

			resolved = append(resolved, pending{descriptorID: entry.InputDescriptorID, records: records})
		}
	}

	for _, p := range resolved {
		r.add(p.descriptorID, p.records...)
	}

	return nil
}

func (r DescriptorMetadata) add(descriptorID string, records ...*RecordWithMetadata) {
	list, ok := r[descriptorID]
	if !ok {
		list = []*RecordWithMetadata{}
	}

	for _, rec := range records {
		if contains(list, rec.Record.ID) {
			logger.Debugf("credential %s already listed for descriptor %s", rec.Record.ID, descriptorID)
			continue
		}

		list = append(list, rec)
	}

	r[descriptorID] = list
}

func contains(list []*RecordWithMetadata, recordID string) bool {
	for _, rec := range list {
		if rec != nil && rec.Record != nil && rec.Record.ID == recordID {
			return true
		}
	}

	return false
}

// CredentialIDs returns the ids of the records listed under descriptorID, in order.
func (r DescriptorMetadata) CredentialIDs(descriptorID string) []string {
	list := r[descriptorID]

	out := make([]string, 0, len(list))
	for _, rec := range list {
		if rec != nil && rec.Record != nil {
			out = append(out, rec.Record.ID)
		}
	}

	return out
}

func resolveRecord(vc *SubmissionEntryCredential) (*RecordWithMetadata, error) {
	if vc == nil {
		return nil, errors.New("missing credential")
	}

	if vc.Type != LdpVC && vc.Type != JwtVC {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", vc.Type)
	}

	if vc.CredentialRecord == nil {
		return nil, errors.New("missing credential record")
	}

	tags, ok := NativeTags(vc.CredentialRecord)
	if !ok {
		types, err := CredentialTypes(vc.Type, vc.CredentialRecord)
		if err != nil {
			return nil, err
		}

		tags = DeriveSyntheticTags(specificType(types))
	}

	claims, err := CredentialClaims(vc.Type, vc.CredentialRecord)
	if err != nil {
		logger.Debugf("no subject claims for credential %s: %v", vc.CredentialRecord.ID, err)
	}

	return &RecordWithMetadata{Record: vc.CredentialRecord, AnonCredsTags: tags, Attributes: claims}, nil
}

// NativeTags reads the AnonCreds tags stored on a record issued as an AnonCreds credential.
func NativeTags(record *W3cCredentialRecord) (*AnonCredsTags, bool) {
	if _, ok := record.Metadata[AnonCredsMetadataKey]; !ok {
		return nil, false
	}

	tags := &AnonCredsTags{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           tags,
	})
	if err != nil {
		return nil, false
	}

	if err = dec.Decode(record.Tags); err != nil {
		logger.Warnf("invalid anoncreds tags on credential %s: %v", record.ID, err)
		return nil, false
	}

	if tags.CredentialDefinitionID == "" || tags.SchemaID == "" || tags.LinkSecretID == "" || tags.MethodName == "" {
		return nil, false
	}

	return tags, true
}

// DeriveSyntheticTags fabricates AnonCreds tags for a credential that has none, using its
// type as schema and credential definition.
func DeriveSyntheticTags(credentialType string) *AnonCredsTags {
	return &AnonCredsTags{
		LinkSecretID:           SyntheticLinkSecretID,
		CredentialDefinitionID: credentialType,
		SchemaID:               credentialType,
		SchemaName:             credentialType,
		SchemaIssuerID:         SyntheticSchemaIssuerID,
		SchemaVersion:          SyntheticSchemaVersion,
		MethodName:             SyntheticMethodName,
	}
}
