/*
Package compose imports Docker Compose files into the builder graph.

A compose file is parsed with compose-go and every service becomes a Label
named after it. The resulting Project is Deployable, so it can be handed to
Deployment.Deploy next to machines and hand-written labels.

# Translation

	services.<name>                → Label "<name>" (unique within the builder)
	  image / command / environment → each container of the label
	  deploy.replicas (default 1)   → number of containers
	  ports[].target                → ports the service listens on
	  ports[] with a published port → ConnectFromPublic(target)
	  expose[]                      → ports (or ranges) the service listens on
	  depends_on: [dep]             → Connect(port, dep) for each dep port

A dependency that declares no ports produces no connection. Services are
processed in sorted order, so the same file always yields the same label
names and the same artifact.

Build-only services are rejected since a container needs an image.

# Usage

	b := stitch.NewBuilder(nil)
	project, err := compose.LoadFile(ctx, b, "compose.yaml")
	if err != nil {
		return err
	}
	if err := d.Deploy(project); err != nil {
		return err
	}
*/
package compose
