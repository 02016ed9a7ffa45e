/*
Package specs provides ready-made Deployable templates for common services.

Each template builds its labels and containers through a *stitch.Builder and
wires the environment and connections the service needs, so callers only
choose sizes:

	b := stitch.NewBuilder(nil)
	db := specs.NewMySQL(b, 2)
	memcd := specs.NewMemcached(b, 3)
	wp := specs.NewWordpress(b, 4, db, memcd)
	hap, err := specs.NewHAProxy(b, 2, wp.Label)

	err = d.Deploy(memcd, db, wp, hap)

# Templates

	etcd       label etcd          PEERS/HOST env, self 1000-65535
	memcached  label memcd
	zookeeper  label zoo           ZOO env, self 2888-3888 and 2181
	spark      spark-ms/spark-wk   7077 worker→worker, worker→master,
	                               2181 master→zookeeper, Public, Exclusive, Job
	mysql      mysql-dbm/mysql-dbr 3306 and 22 replica→master
	haproxy    label hap           80 to hosts, public ingress on 80
	wordpress  label wp            3306 to master and replicas, 11211 to memcd

Peer lists are built from Label.Children, the per-container hostnames
"1.<label>.q" through "n.<label>.q".

# Registry

The CLI compiles templates by name. Registry, Names and Lookup expose the
named recipes; Template.Build validates Options before constructing. The
spark and wordpress recipes bundle their dependencies into a Stack.
*/
package specs
