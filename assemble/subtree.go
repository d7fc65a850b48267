// Package assemble implements the Subtree Builder (spec.md §4.C) and
// the Local Tree Projector (spec.md §4.D): the two ways a reply tree
// gets populated from a compiled xpath, one pulling from a datastore
// backend, the other copying out of an already-assembled local tree
// (ietf-yang-library, ietf-netconf-monitoring, nc-notifications).
// Grounded on opget_build_subtree_from_sysrepo and
// opget_build_tree_from_data in original_source/server/op_get_config.c.
package assemble

import (
	"github.com/pkg/errors"

	"github.com/damianoneill/netconf-yang-server/apperr"
	"github.com/damianoneill/netconf-yang-server/datastore"
	"github.com/damianoneill/netconf-yang-server/datatree"
	"github.com/damianoneill/netconf-yang-server/valuecodec"
	"github.com/damianoneill/netconf-yang-server/yang/schema"
)

// FromDatastore populates dst with every value the backend yields for
// xpath, the Subtree Builder (spec.md §4.C): it drives the
// get_items_iter/iter_next loop and upserts each yielded value,
// tracking schema.Node per path via dst's own walk so the Value Codec
// can render the value's canonical text form. ErrNotFound and
// ErrUnknownModel are not errors — a model without data, or a filter
// path nothing matches, yields an empty result, matching
// opget_build_subtree_from_sysrepo's SR_ERR_UNKNOWN_MODEL/SR_ERR_NOT_FOUND
// handling.
func FromDatastore(ctx *schema.Context, backend datastore.Backend, dst *datatree.Tree, xpath string) error {
	iter, err := backend.Items(xpath)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) || errors.Is(err, datastore.ErrUnknownModel) {
			return nil
		}
		return apperr.Datastore(err, "items(%s)", xpath)
	}
	defer iter.Close()

	buf := make([]byte, 0, 128)
	for {
		v, err := iter.Next()
		if errors.Is(err, datastore.ErrIterDone) {
			return nil
		}
		if err != nil {
			if errors.Is(err, datastore.ErrNotFound) || errors.Is(err, datastore.ErrUnknownModel) {
				return nil
			}
			return apperr.Datastore(err, "next(%s)", xpath)
		}

		sn, err := ctx.Resolve(v.XPath)
		if err != nil {
			return apperr.Schema("%v", err)
		}

		text, err := valuecodec.DatastoreToTree(sn, v, buf)
		if err != nil {
			return err
		}

		if _, err := dst.Upsert(ctx, v.XPath, text, v.Default); err != nil {
			return err
		}
	}
}
