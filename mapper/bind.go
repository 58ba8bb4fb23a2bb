package mapper

import (
	"fmt"
	"reflect"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"meilimap/schema"
)

// taskPollDelay is how long Bind waits before its single status poll of a
// primary key task.
const taskPollDelay = 100 * time.Millisecond

// Bind validates the entity T, synchronizes the remote index according to
// the runtime's options and registers the resulting binding under impl's
// concrete type. Generated constructors call it with the implementation
// value under construction:
//
//	m := &RoleMapperImpl{}
//	base, err := mapper.Bind[store.Role](rt, m)
//	if err != nil { ... }
//	m.Base = base
//
// Validation stops at the first violated rule. Any remote failure other
// than the diagnostic task poll is fatal and returned as *RemoteError.
func Bind[T any](rt *Runtime, impl any) (Base[T], error) {
	var unbound Base[T]

	if rt == nil || rt.client == nil {
		return unbound, ErrNoClient
	}
	key := reflect.TypeOf(impl)
	if key == nil {
		return unbound, fmt.Errorf("%w: nil implementation", ErrNotBound)
	}

	ent, err := schema.Describe(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return unbound, err
	}

	uid, err := ent.UID(schema.Policy{
		RequireAnnotation:    rt.opts.RequireIndexAnnotation,
		UseTypeNameAsDefault: rt.opts.UseTypeNameAsDefaultIndexName,
	})
	if err != nil {
		return unbound, err
	}
	if !ent.Annotated {
		rt.log.Warn("entity declares no index uid, falling back to type name",
			"entity", ent.Name, "uid", uid)
	}

	pk, err := ent.PrimaryKey()
	if err != nil {
		return unbound, err
	}

	if err := rt.syncPrimaryKey(uid, pk); err != nil {
		return unbound, err
	}

	// The handle is fetched from the server rather than constructed
	// locally, so a vanished or unreachable index fails the bind even
	// when both sync phases are off.
	idx, err := rt.client.GetIndex(uid)
	if err != nil {
		return unbound, remoteErr("get index", uid, err)
	}

	if err := rt.syncSettings(ent, idx, uid); err != nil {
		return unbound, err
	}

	rt.register(key, &binding{uid: uid, pk: pk, entity: ent, index: idx})
	rt.log.Info("mapper bound", "mapper", key.String(), "uid", uid, "primaryKey", pk)

	return Base[T]{rt: rt, self: key}, nil
}

// syncPrimaryKey creates the index with pk, or updates pk on an existing
// index. The follow-up task poll is diagnostic only: its failure is
// logged, never returned.
func (rt *Runtime) syncPrimaryKey(uid, pk string) error {
	if !rt.opts.AutoSyncPrimaryKey {
		rt.log.Info("primary key sync disabled, leaving index untouched", "uid", uid)
		return nil
	}

	exists, err := rt.indexExists(uid)
	if err != nil {
		return remoteErr("list indexes", uid, err)
	}

	var info *meilisearch.TaskInfo
	if exists {
		info, err = rt.client.Index(uid).UpdateIndex(pk)
		if err != nil {
			return remoteErr("update index primary key", uid, err)
		}
	} else {
		info, err = rt.client.CreateIndex(&meilisearch.IndexConfig{Uid: uid, PrimaryKey: pk})
		if err != nil {
			return remoteErr("create index", uid, err)
		}
	}

	time.Sleep(taskPollDelay)

	task, err := rt.client.GetTask(info.TaskUID)
	if err != nil {
		rt.log.Warn("primary key task poll failed",
			"uid", uid, "taskUID", info.TaskUID, "err", err)
		return nil
	}
	rt.log.Info("primary key synchronized",
		"uid", uid, "primaryKey", pk, "taskUID", info.TaskUID, "status", task.Status)
	return nil
}

func (rt *Runtime) indexExists(uid string) (bool, error) {
	res, err := rt.client.GetIndexes(nil)
	if err != nil {
		return false, err
	}
	for i := range res.Results {
		if res.Results[i].UID == uid {
			return true, nil
		}
	}
	return false, nil
}

// syncSettings derives the settings payload from the entity's attribute
// roles and pushes it. The distinct cardinality rule is enforced here, on
// the sync path, so disabling the sync also disables the check.
func (rt *Runtime) syncSettings(ent *schema.Entity, idx msearch.Index, uid string) error {
	if !rt.opts.AutoSyncSettings {
		rt.log.Info("settings sync disabled, leaving settings untouched", "uid", uid)
		return nil
	}

	settings, err := settingsFor(ent)
	if err != nil {
		return err
	}
	if _, err := idx.UpdateSettings(settings); err != nil {
		return remoteErr("update settings", uid, err)
	}

	rt.log.Info("settings synchronized", "uid", uid)
	return nil
}

// settingsFor builds a payload containing only the groups the entity
// actually populates, so the update never clobbers remote settings the
// struct says nothing about.
func settingsFor(ent *schema.Entity) (*meilisearch.Settings, error) {
	distinct, err := ent.Distinct()
	if err != nil {
		return nil, err
	}

	settings := &meilisearch.Settings{}
	if distinct != "" {
		settings.DistinctAttribute = &distinct
	}
	if attrs := ent.AttributesWithRole(schema.RoleDisplayed); len(attrs) > 0 {
		settings.DisplayedAttributes = attrs
	}
	if attrs := ent.AttributesWithRole(schema.RoleFilterable); len(attrs) > 0 {
		settings.FilterableAttributes = attrs
	}
	if attrs := ent.AttributesWithRole(schema.RoleSearchable); len(attrs) > 0 {
		settings.SearchableAttributes = attrs
	}
	if attrs := ent.AttributesWithRole(schema.RoleSortable); len(attrs) > 0 {
		settings.SortableAttributes = attrs
	}
	if attrs := ent.AttributesWithRole(schema.RoleStopWord); len(attrs) > 0 {
		settings.StopWords = attrs
	}
	return settings, nil
}
